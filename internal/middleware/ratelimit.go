package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/studentools/studentools-api/internal/service"
	appErrors "github.com/studentools/studentools-api/pkg/errors"
	"github.com/studentools/studentools-api/pkg/response"
)

// Endpoint tiers: cheap reads get a generous budget, rendering and
// third-party lookups get progressively tighter ones.
const (
	TierLightweight = "lightweight"
	TierExport      = "export"
	TierLookup      = "lookup"
)

const (
	limiterIdleTimeout = 10 * time.Minute
	limiterPruneSize   = 1024
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a per-client-IP request budget for one tier.
type RateLimiter struct {
	tier    string
	limit   rate.Limit
	burst   int
	metrics *service.MetricsService

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

// NewRateLimiter builds a limiter allowing perMinute requests per client.
func NewRateLimiter(tier string, perMinute int, metrics *service.MetricsService) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &RateLimiter{
		tier:    tier,
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   perMinute,
		metrics: metrics,
		clients: make(map[string]*clientLimiter),
	}
}

// Middleware rejects requests over budget with 429.
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.allow(c.ClientIP()) {
			if r.metrics != nil {
				r.metrics.RecordRateLimited(r.tier)
			}
			response.Error(c, appErrors.ErrRateLimited)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	client, ok := r.clients[ip]
	if !ok {
		if len(r.clients) >= limiterPruneSize {
			r.prune(now)
		}
		client = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter.Allow()
}

// prune drops limiters idle longer than the timeout. Callers hold the lock.
func (r *RateLimiter) prune(now time.Time) {
	for ip, client := range r.clients {
		if now.Sub(client.lastSeen) > limiterIdleTimeout {
			delete(r.clients, ip)
		}
	}
}
