package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRejectsBadCronSpec(t *testing.T) {
	s := NewScheduler(nil, nil, nil)
	assert.Error(t, s.Register("not a cron spec"))
}

func TestRegisterAcceptsSecondsSpec(t *testing.T) {
	s := NewScheduler(nil, nil, nil)
	assert.NoError(t, s.Register("0 0 6 * * *"))

	s.Start()
	s.Stop()
}
