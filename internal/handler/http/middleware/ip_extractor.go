package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// IPExtractor resolves the client address used as the rate limit key.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor uses the TCP peer address and ignores headers.
type RemoteAddrExtractor struct{}

func (RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return hostOnly(r.RemoteAddr)
}

// TrustedProxyExtractor reads X-Forwarded-For, then X-Real-IP, but only when
// the peer is one of the trusted proxies. Otherwise it uses RemoteAddr.
type TrustedProxyExtractor struct {
	proxies []netip.Prefix
}

// NewTrustedProxyExtractor parses proxies given as IPs or CIDRs.
func NewTrustedProxyExtractor(proxies []string) (*TrustedProxyExtractor, error) {
	prefixes, err := ParseTrustedProxies(proxies)
	if err != nil {
		return nil, err
	}
	return &TrustedProxyExtractor{proxies: prefixes}, nil
}

func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	peer, err := hostOnly(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	if !e.trusted(peer) {
		return peer, nil
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if addr, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
			return addr.String(), nil
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if addr, err := netip.ParseAddr(xri); err == nil {
			return addr.String(), nil
		}
	}
	return peer, nil
}

func (e *TrustedProxyExtractor) trusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, p := range e.proxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// ParseTrustedProxies accepts single addresses (turned into /32 or /128)
// and CIDR ranges.
func ParseTrustedProxies(values []string) ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.Contains(v, "/") {
			p, err := netip.ParsePrefix(v)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", v, err)
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(v)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", v, err)
		}
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

func hostOnly(addr string) (string, error) {
	if addr == "" {
		return "", fmt.Errorf("empty remote address")
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		// no port
		if a, perr := netip.ParseAddr(addr); perr == nil {
			return a.String(), nil
		}
		return "", fmt.Errorf("invalid remote address %q: %w", addr, err)
	}
	return host, nil
}
