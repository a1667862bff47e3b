package middleware

import (
	"sync"
	"time"

	"github.com/akolanti/LabAPI/internal/config"
	"golang.org/x/time/rate"
)

var limiterInstance = NewIPRateLimiter(rate.Limit(config.RATE_LIMIT_PER_SECOND), config.BURST_RATE_LIMIT_PER_SECOND)

const (
	// entries untouched this long are eligible for eviction
	limiterIdleEviction = 10 * time.Minute
	// a sweep runs when a new IP arrives and the map is at least this big
	limiterSweepSize = 1000
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type IPRateLimiter struct {
	ips       map[string]*ipLimiter
	mu        sync.Mutex
	rateLimit rate.Limit
	burstRate int
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{ips: make(map[string]*ipLimiter), rateLimit: r, burstRate: b}
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()
	entry, exists := i.ips[ip]
	if !exists {
		if len(i.ips) >= limiterSweepSize {
			i.evictIdle()
		}
		entry = &ipLimiter{limiter: rate.NewLimiter(i.rateLimit, i.burstRate)}
		i.ips[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// evictIdle drops limiters that have not been seen recently. Caller holds
// the lock.
func (i *IPRateLimiter) evictIdle() {
	cutoff := time.Now().Add(-limiterIdleEviction)
	for ip, entry := range i.ips {
		if entry.lastSeen.Before(cutoff) {
			delete(i.ips, ip)
		}
	}
}

//TODO: when the users grow
// I must offload this key-value to redis
