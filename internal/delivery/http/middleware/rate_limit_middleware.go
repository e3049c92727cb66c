package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"telehealth-api/pkg/response"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const defaultLimiterIdleTTL = 10 * time.Minute

type RateLimiterConfig struct {
	Rate  rate.Limit
	Burst int
	// TrustedProxies are addresses or CIDRs whose X-Forwarded-For header is honoured.
	TrustedProxies []string
	// IdleTTL drops a client's bucket after this long without requests.
	IdleTTL time.Duration
}

// RateLimiter keeps one token bucket per client IP. Buckets expire when idle.
type RateLimiter struct {
	config   RateLimiterConfig
	trusted  []netip.Prefix
	limiters *gocache.Cache
}

func NewRateLimiter(config RateLimiterConfig) (*RateLimiter, error) {
	trusted := make([]netip.Prefix, 0, len(config.TrustedProxies))
	for _, raw := range config.TrustedProxies {
		prefix, err := parsePrefix(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
		}
		trusted = append(trusted, prefix)
	}

	if config.IdleTTL <= 0 {
		config.IdleTTL = defaultLimiterIdleTTL
	}

	return &RateLimiter{
		config:   config,
		trusted:  trusted,
		limiters: gocache.New(config.IdleTTL, config.IdleTTL),
	}, nil
}

func parsePrefix(raw string) (netip.Prefix, error) {
	if strings.Contains(raw, "/") {
		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			return netip.Prefix{}, err
		}
		return prefix.Masked(), nil
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// limiter returns the bucket for key and pushes its expiry forward.
func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	if v, ok := rl.limiters.Get(key); ok {
		l := v.(*rate.Limiter)
		rl.limiters.SetDefault(key, l)
		return l
	}

	l := rate.NewLimiter(rl.config.Rate, rl.config.Burst)
	if err := rl.limiters.Add(key, l, gocache.DefaultExpiration); err != nil {
		// Another request created it first.
		if v, ok := rl.limiters.Get(key); ok {
			return v.(*rate.Limiter)
		}
	}
	return l
}

func (rl *RateLimiter) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter(rl.clientKey(r)).Allow() {
			response.TooManyRequests(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey is the peer address, unless the peer is a trusted proxy. Then the
// X-Forwarded-For chain is walked from the right and the first untrusted hop wins.
func (rl *RateLimiter) clientKey(r *http.Request) string {
	remote := remoteIP(r)
	if !rl.isTrusted(remote) {
		return remote
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !rl.isTrusted(hop) {
			return hop
		}
	}
	return remote
}

func (rl *RateLimiter) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range rl.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
