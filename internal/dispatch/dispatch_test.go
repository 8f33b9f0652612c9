package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPruneFiredDropsOnlyStaleEntries(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	firedMu.Lock()
	lastFired = map[int]time.Time{
		1: now.Add(-refireGuard),
		2: now.Add(-time.Second),
	}
	firedMu.Unlock()

	pruneFired(now)

	firedMu.Lock()
	defer firedMu.Unlock()
	_, stale := lastFired[1]
	_, fresh := lastFired[2]
	assert.False(t, stale, "entries past the guard window must be dropped")
	assert.True(t, fresh, "entries inside the guard window must survive")
}
