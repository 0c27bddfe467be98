package http

import (
	"fmt"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	applog "ledger/internal/log"
)

var trustedProxies = mustCIDRs("127.0.0.0/8", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16")

func mustCIDRs(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, n, err := net.ParseCIDR(c)
		if err != nil {
			panic(fmt.Sprintf("bad proxy CIDR %q: %v", c, err))
		}
		nets = append(nets, n)
	}
	return nets
}

func fromTrustedProxy(ip net.IP) bool {
	return ip != nil && slices.ContainsFunc(trustedProxies, func(n *net.IPNet) bool { return n.Contains(ip) })
}

// extractClientIP returns the peer address. Forwarding headers are honoured
// only when the peer itself is a private or loopback proxy.
func extractClientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if !fromTrustedProxy(net.ParseIP(peer)) {
		return peer
	}

	forwarded, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	for _, candidate := range []string{strings.TrimSpace(forwarded), r.Header.Get("X-Real-IP")} {
		if candidate != "" && net.ParseIP(candidate) != nil {
			return candidate
		}
	}
	return peer
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	}
	return false
}

// withSecurity sets the security headers and rate limits mutating requests.
func (s *Server) withSecurity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")

		if isMutating(r.Method) {
			ip := extractClientIP(r)
			if !s.limiter.allow(ip, time.Now()) {
				applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
					"client_ip", ip,
					applog.FieldMethod, r.Method,
					applog.FieldPath, r.URL.Path)
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later", "")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
