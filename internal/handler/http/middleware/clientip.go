package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

type clientIPKey struct{}

// ClientIP resolves the caller's address and stores it in the context.
// X-Forwarded-For is only read when the direct peer is one of the trusted
// proxies; the chain is walked from the right and the first hop outside
// the trusted set is the client.
func ClientIP(trusted []netip.Prefix) func(http.Handler) http.Handler {
	isTrusted := func(addr netip.Addr) bool {
		addr = addr.Unmap()
		for _, prefix := range trusted {
			if prefix.Contains(addr) {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ip := remoteHost(r.RemoteAddr)
			if peer, err := netip.ParseAddr(ip); err == nil && isTrusted(peer) {
				if forwarded := forwardedChain(r.Header.Values("X-Forwarded-For")); len(forwarded) > 0 {
					ip = forwarded[0]
					for i := len(forwarded) - 1; i >= 0; i-- {
						hop, err := netip.ParseAddr(forwarded[i])
						if err != nil || !isTrusted(hop) {
							ip = forwarded[i]
							break
						}
					}
				}
			}

			ctx := context.WithValue(r.Context(), clientIPKey{}, ip)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}

// ClientIPFromContext returns the address resolved by ClientIP.
func ClientIPFromContext(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPKey{}).(string)
	return ip, ok && ip != ""
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// forwardedChain flattens repeated X-Forwarded-For headers, dropping empty entries.
func forwardedChain(values []string) []string {
	var chain []string
	for _, value := range values {
		for _, hop := range strings.Split(value, ",") {
			if hop = strings.TrimSpace(hop); hop != "" {
				chain = append(chain, hop)
			}
		}
	}
	return chain
}
