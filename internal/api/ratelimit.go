package api

import (
	"math"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/losingsanity/anyvod/internal/config"
	"github.com/losingsanity/anyvod/internal/metrics"
)

const (
	// limiterIdleTTL drops the limiter of a client that has been quiet this long.
	limiterIdleTTL = 10 * time.Minute

	defaultMaxClients = 10000
)

// IPRateLimiter hands out one token bucket per client IP. The table is a
// bounded LRU so a flood of distinct addresses cannot grow it without limit.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters *lru.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
	trusted  []netip.Prefix
}

// NewIPRateLimiter allows requestsPerSecond per client with the given burst,
// tracking at most maxClients addresses.
func NewIPRateLimiter(requestsPerSecond float64, burst, maxClients int) *IPRateLimiter {
	if burst < 1 {
		burst = max(1, int(math.Ceil(requestsPerSecond)))
	}
	if maxClients < 1 {
		maxClients = defaultMaxClients
	}
	return &IPRateLimiter{
		limiters: lru.NewLRU[string, *rate.Limiter](maxClients, nil, limiterIdleTTL),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// TrustProxies lists the peers whose X-Forwarded-For and X-Real-IP headers
// are believed. Requests from any other peer are keyed by their socket address.
func (rl *IPRateLimiter) TrustProxies(prefixes []netip.Prefix) {
	rl.trusted = prefixes
}

func (rl *IPRateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limiters.Get(ip); ok {
		// refresh the idle deadline
		rl.limiters.Add(ip, limiter)
		return limiter
	}
	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters.Add(ip, limiter)
	return limiter
}

// Middleware rejects requests over the client's budget with 429 and a
// Retry-After header giving the whole seconds until a token is available.
func (rl *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		reservation := rl.limiter(rl.clientIP(r)).Reserve()
		if delay := reservation.Delay(); delay > 0 {
			reservation.Cancel()
			metrics.RateLimitedRequestsTotal.Inc()
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			writeDetail(w, http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP keys a request by its socket peer. Forwarding headers are only
// consulted when that peer is a trusted proxy, and then the rightmost hop not
// owned by a trusted proxy wins, since everything left of it is client supplied.
func (rl *IPRateLimiter) clientIP(r *http.Request) string {
	peer := remoteHost(r.RemoteAddr)
	if !rl.isTrusted(peer) {
		return peer
	}

	if xff := r.Header.Values("X-Forwarded-For"); len(xff) > 0 {
		hops := strings.Split(strings.Join(xff, ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if _, err := netip.ParseAddr(hop); err != nil {
				// a malformed hop means the chain cannot be trusted past this point
				return peer
			}
			if !rl.isTrusted(hop) {
				return hop
			}
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if _, err := netip.ParseAddr(xri); err == nil {
			return xri
		}
	}
	return peer
}

func (rl *IPRateLimiter) isTrusted(ip string) bool {
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

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// parseTrustedProxies reads a comma separated list of addresses and CIDR
// ranges. Bad entries are logged and skipped.
func parseTrustedProxies(list string) []netip.Prefix {
	logger := config.GetLogger()

	var prefixes []netip.Prefix
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				logger.Warn().Err(err).Str("trusted_proxy", entry).Msg("Ignoring invalid trusted proxy range")
				continue
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			logger.Warn().Err(err).Str("trusted_proxy", entry).Msg("Ignoring invalid trusted proxy address")
			continue
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes
}
