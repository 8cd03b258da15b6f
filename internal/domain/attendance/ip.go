package attendance

import (
	"net/netip"
	"strings"
	"unicode"
)

var ipv4Loopback = netip.AddrFrom4([4]byte{127, 0, 0, 1})

// NormalizeIP strips whitespace and folds IPv4-mapped and IPv6 loopback
// addresses so allowlist lookups compare like with like.
func NormalizeIP(ip string) string {
	ip = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, ip)

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		// not an address, only fold the mapped prefix
		if len(ip) > 7 && strings.EqualFold(ip[:7], "::ffff:") {
			return ip[7:]
		}
		return ip
	}

	addr = addr.Unmap()
	if addr == netip.IPv6Loopback() {
		addr = ipv4Loopback
	}
	return addr.String()
}
