package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	ActionChatbotMessage = "chatbot_message"
	ActionSendMessage    = "send_message"
	ActionVisitRequest   = "visit_request"
	ActionTrackView      = "track_view"
)

// Limit is the sustained rate and burst for one action.
type Limit struct {
	PerMinute int
	Burst     int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client key and action.
type RateLimiter struct {
	limits   map[string]Limit
	fallback Limit
	buckets  map[string]*bucket
	mutex    sync.Mutex
	now      func() time.Time
}

func DefaultLimits(chatbotPerMinute int) map[string]Limit {
	if chatbotPerMinute <= 0 {
		chatbotPerMinute = 20
	}
	return map[string]Limit{
		ActionChatbotMessage: {PerMinute: chatbotPerMinute, Burst: chatbotPerMinute},
		ActionSendMessage:    {PerMinute: 10, Burst: 10},
		ActionVisitRequest:   {PerMinute: 5, Burst: 5},
		ActionTrackView:      {PerMinute: 60, Burst: 30},
	}
}

func NewRateLimiter(limits map[string]Limit) *RateLimiter {
	return &RateLimiter{
		limits:   limits,
		fallback: Limit{PerMinute: 20, Burst: 20},
		buckets:  make(map[string]*bucket),
		now:      time.Now,
	}
}

// Allow consumes a token for key/action and reports how long to wait when none is left.
func (rl *RateLimiter) Allow(key, action string) (bool, time.Duration) {
	now := rl.now()
	b := rl.bucketFor(key, action, now)

	reservation := b.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Minute
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// ActionLimiter binds a RateLimiter to a single action.
type ActionLimiter struct {
	rl     *RateLimiter
	action string
}

func (rl *RateLimiter) For(action string) ActionLimiter {
	return ActionLimiter{rl: rl, action: action}
}

func (a ActionLimiter) Allow(key string) bool {
	allowed, _ := a.rl.Allow(key, a.action)
	return allowed
}

func (rl *RateLimiter) bucketFor(key, action string, now time.Time) *bucket {
	id := key + ":" + action

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	b, exists := rl.buckets[id]
	if !exists {
		limit, ok := rl.limits[action]
		if !ok {
			limit = rl.fallback
		}
		b = &bucket{
			limiter: rate.NewLimiter(rate.Limit(float64(limit.PerMinute)/60), limit.Burst),
		}
		rl.buckets[id] = b
	}
	b.lastSeen = now
	return b
}

// Cleanup removes buckets idle for longer than an hour.
func (rl *RateLimiter) Cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > time.Hour {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) StartCleanupRoutine(stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup()
			case <-stop:
				return
			}
		}
	}()
}
