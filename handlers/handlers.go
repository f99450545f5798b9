// Package handlers contains the HTTP handlers. All of them share one Handler
// carrying the engine and its collaborators, constructed once in main.
package handlers

import (
	"restockd/config"
	"restockd/predictor"
	"restockd/pricestore"
)

type Handler struct {
	Engine  *predictor.Engine
	Tracker *predictor.AccuracyTracker
	Prices  *pricestore.Store
	Cfg     *config.Config
}

func New(engine *predictor.Engine, tracker *predictor.AccuracyTracker, prices *pricestore.Store, cfg *config.Config) *Handler {
	return &Handler{Engine: engine, Tracker: tracker, Prices: prices, Cfg: cfg}
}
