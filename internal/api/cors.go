package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/losingsanity/anyvod/internal/config"
)

// productionOrigin is the public front-end; it is always allowed.
const productionOrigin = "https://vod.losingsanity.com"

var developmentOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
	"http://127.0.0.1:5173",
	"http://127.0.0.1:3000",
}

const (
	corsAllowMethods = "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT"
	corsMaxAge       = "600"
)

// corsPolicy decides which browser origins may call the API with credentials.
type corsPolicy struct {
	origins map[string]bool
	// allowAll is set when no origin was configured at all
	allowAll bool
	// renderSubdomains admits any https://*.onrender.com origin
	renderSubdomains bool
}

func newCORSPolicy(cfg *config.Config) *corsPolicy {
	var origins []string
	for _, origin := range strings.Split(cfg.CORS.Origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if cfg.IsDevelopment() {
		origins = append(origins, developmentOrigins...)
	}
	origins = append(origins, productionOrigin)

	p := &corsPolicy{origins: make(map[string]bool, len(origins))}
	for _, origin := range origins {
		if origin == "*" {
			p.allowAll = true
			continue
		}
		p.origins[origin] = true
		if strings.Contains(origin, "onrender.com") {
			p.renderSubdomains = true
		}
	}

	logger := config.GetLogger()
	logger.Info().
		Str("environment", cfg.Environment).
		Strs("origins", origins).
		Bool("render_subdomains", p.renderSubdomains).
		Msg("CORS policy")

	return p
}

func (p *corsPolicy) allowed(origin string) bool {
	if p.allowAll || p.origins[origin] {
		return true
	}
	return p.renderSubdomains && isRenderOrigin(origin)
}

func isRenderOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Scheme != "https" || u.Path != "" {
		return false
	}
	host := u.Hostname()
	return strings.HasSuffix(host, ".onrender.com") && len(host) > len(".onrender.com")
}

// Middleware answers preflight requests and decorates responses to allowed
// origins. The origin is echoed rather than "*" because credentials are allowed.
func (p *corsPolicy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		allowed := p.allowed(origin)
		w.Header().Add("Vary", "Origin")

		preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
		if preflight {
			if !allowed {
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte("Disallowed CORS origin"))
				return
			}
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
				h.Set("Access-Control-Allow-Headers", requested)
			}
			h.Set("Access-Control-Max-Age", corsMaxAge)
			w.WriteHeader(http.StatusOK)
			return
		}

		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		next.ServeHTTP(w, r)
	})
}
