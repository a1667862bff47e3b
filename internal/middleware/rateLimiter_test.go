package middleware

import (
	"fmt"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestIPRateLimiter_SameIPSharesLimiter(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)

	if l.GetLimiter("10.0.0.1") != l.GetLimiter("10.0.0.1") {
		t.Error("same IP must reuse its limiter")
	}
	if l.GetLimiter("10.0.0.1") == l.GetLimiter("10.0.0.2") {
		t.Error("different IPs must get distinct limiters")
	}
}

func TestIPRateLimiter_EvictsIdleEntries(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)

	for i := 0; i < limiterSweepSize; i++ {
		l.GetLimiter(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}

	// Age every entry past the idle cutoff, then trigger a sweep with a
	// fresh IP.
	l.mu.Lock()
	for _, entry := range l.ips {
		entry.lastSeen = time.Now().Add(-limiterIdleEviction - time.Minute)
	}
	l.mu.Unlock()

	l.GetLimiter("192.168.0.1")

	l.mu.Lock()
	size := len(l.ips)
	l.mu.Unlock()
	if size != 1 {
		t.Errorf("idle limiters should be evicted, map still holds %d entries", size)
	}
}

func TestIPRateLimiter_ActiveEntriesSurviveSweep(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)

	for i := 0; i < limiterSweepSize; i++ {
		l.GetLimiter(fmt.Sprintf("10.1.%d.%d", i/256, i%256))
	}

	busy := l.GetLimiter("10.1.0.0")
	l.GetLimiter("172.16.0.1")

	if l.GetLimiter("10.1.0.0") != busy {
		t.Error("recently seen IPs must keep their limiter across a sweep")
	}
}
