package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Date is a calendar date that unmarshals from "2006-01-02" in YAML.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("2006-01-02", value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalYAML() (interface{}, error) {
	return d.Format("2006-01-02"), nil
}

// Holiday is one named demand-shifting holiday. Factor is the base demand
// adjustment on the day itself; PreDays/PostDays bound the proximity windows.
type Holiday struct {
	Name     string  `yaml:"name"`
	Factor   float64 `yaml:"factor"`
	PreDays  int     `yaml:"pre_days"`
	PostDays int     `yaml:"post_days"`
}

// Window is a date-inclusive period carrying a flat demand factor.
type Window struct {
	Start  Date    `yaml:"start"`
	End    Date    `yaml:"end"`
	Name   string  `yaml:"name,omitempty"`
	Factor float64 `yaml:"factor"`
}

// Contains reports whether day falls inside the window, inclusive.
func (w Window) Contains(day time.Time) bool {
	return !day.Before(w.Start.Time) && !day.After(w.End.Time)
}

// CalendarTable is the static rule data the event resolver layers under the
// live holiday source: named holidays keyed by ISO date, Ramadan and
// school-holiday windows, and the Chinese New Year anchor per year for the
// seasonal price model.
type CalendarTable struct {
	Holidays       map[string]Holiday `yaml:"holidays"`
	Ramadan        []Window           `yaml:"ramadan"`
	SchoolHolidays []Window           `yaml:"school_holidays"`
	CNYDates       map[int]Date       `yaml:"cny_dates"`
}

// LoadCalendarTable reads the YAML calendar file. A missing file yields the
// compiled-in defaults; a malformed one is an error.
func LoadCalendarTable(path string) (*CalendarTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultCalendarTable(), nil
		}
		return nil, fmt.Errorf("read calendar file: %w", err)
	}

	table := &CalendarTable{}
	if err := yaml.Unmarshal(data, table); err != nil {
		return nil, fmt.Errorf("parse calendar file: %w", err)
	}

	// Partial files inherit the missing sections from the defaults.
	defaults := DefaultCalendarTable()
	if len(table.Holidays) == 0 {
		table.Holidays = defaults.Holidays
	}
	if len(table.Ramadan) == 0 {
		table.Ramadan = defaults.Ramadan
	}
	if len(table.SchoolHolidays) == 0 {
		table.SchoolHolidays = defaults.SchoolHolidays
	}
	if len(table.CNYDates) == 0 {
		table.CNYDates = defaults.CNYDates
	}
	return table, nil
}

func mustDate(s string) Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return Date{t}
}

// DefaultCalendarTable returns the Malaysian holiday tables used when no
// calendar file is deployed.
func DefaultCalendarTable() *CalendarTable {
	return &CalendarTable{
		Holidays: map[string]Holiday{
			"2024-12-25": {Name: "Christmas", Factor: 0.30, PreDays: 3, PostDays: 1},
			"2025-01-01": {Name: "New Year", Factor: 0.25, PreDays: 2, PostDays: 1},
			"2025-01-29": {Name: "Chinese New Year", Factor: 0.40, PreDays: 5, PostDays: 2},
			"2025-01-30": {Name: "Chinese New Year (Day 2)", Factor: 0.35, PreDays: 4, PostDays: 2},
			"2025-03-31": {Name: "Hari Raya Aidilfitri", Factor: 0.50, PreDays: 5, PostDays: 2},
			"2025-04-01": {Name: "Hari Raya Aidilfitri (Day 2)", Factor: 0.45, PreDays: 4, PostDays: 2},
			"2025-05-01": {Name: "Labour Day", Factor: 0.20, PreDays: 1, PostDays: 0},
			"2025-05-12": {Name: "Wesak Day", Factor: 0.15, PreDays: 1, PostDays: 0},
			"2025-06-07": {Name: "Hari Raya Aidiladha", Factor: 0.30, PreDays: 3, PostDays: 1},
			"2025-08-31": {Name: "Merdeka Day", Factor: 0.20, PreDays: 2, PostDays: 0},
			"2025-09-16": {Name: "Malaysia Day", Factor: 0.20, PreDays: 2, PostDays: 0},
			"2025-10-20": {Name: "Deepavali", Factor: 0.25, PreDays: 3, PostDays: 1},
			"2025-12-25": {Name: "Christmas", Factor: 0.30, PreDays: 3, PostDays: 1},
			"2026-01-01": {Name: "New Year", Factor: 0.25, PreDays: 2, PostDays: 1},
		},
		Ramadan: []Window{
			{Start: mustDate("2025-03-01"), End: mustDate("2025-03-30"), Factor: 0.15},
		},
		SchoolHolidays: []Window{
			{Start: mustDate("2024-11-23"), End: mustDate("2025-01-05"), Name: "Year End", Factor: 0.15},
			{Start: mustDate("2025-03-22"), End: mustDate("2025-03-30"), Name: "Mid Year", Factor: 0.12},
			{Start: mustDate("2025-05-24"), End: mustDate("2025-06-08"), Name: "Mid Year", Factor: 0.12},
			{Start: mustDate("2025-08-16"), End: mustDate("2025-08-24"), Name: "Short Break", Factor: 0.10},
			{Start: mustDate("2025-11-22"), End: mustDate("2026-01-04"), Name: "Year End", Factor: 0.15},
		},
		CNYDates: map[int]Date{
			2024: mustDate("2024-02-10"),
			2025: mustDate("2025-01-29"),
			2026: mustDate("2026-02-17"),
			2027: mustDate("2027-02-06"),
		},
	}
}
