package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow_ExhaustsBurstPerKey(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(map[string]Limit{ActionChatbotMessage: {PerMinute: 2, Burst: 2}})
	rl.now = func() time.Time { return now }

	ok, _ := rl.Allow("1.2.3.4", ActionChatbotMessage)
	assert.True(t, ok)
	ok, _ = rl.Allow("1.2.3.4", ActionChatbotMessage)
	assert.True(t, ok)

	ok, wait := rl.Allow("1.2.3.4", ActionChatbotMessage)
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	ok, _ = rl.Allow("5.6.7.8", ActionChatbotMessage)
	assert.True(t, ok, "other clients keep their own bucket")

	now = now.Add(30 * time.Second)
	ok, _ = rl.Allow("1.2.3.4", ActionChatbotMessage)
	assert.True(t, ok, "a token refills after 30s at 2/min")
}

func TestCleanup_DropsIdleBuckets(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(DefaultLimits(0))
	rl.now = func() time.Time { return now }

	rl.Allow("a", ActionTrackView)
	rl.Allow("b", "unknown_action")
	assert.Len(t, rl.buckets, 2)

	now = now.Add(2 * time.Hour)
	rl.Cleanup()
	assert.Empty(t, rl.buckets)
}

func TestActionLimiter(t *testing.T) {
	rl := NewRateLimiter(map[string]Limit{ActionTrackView: {PerMinute: 1, Burst: 1}})
	views := rl.For(ActionTrackView)

	assert.True(t, views.Allow("1.2.3.4"))
	assert.False(t, views.Allow("1.2.3.4"))
	assert.True(t, views.Allow("5.6.7.8"))

	ok, _ := rl.Allow("1.2.3.4", ActionChatbotMessage)
	assert.True(t, ok, "actions keep separate buckets")
}
