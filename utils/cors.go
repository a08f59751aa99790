package utils

import (
	"net"
	"net/url"
	"strings"
)

// Networks whose addresses may act as browser origins. The gateway is meant
// to sit on a home or lab network, so loopback, RFC1918, link-local and
// unique-local ranges are trusted; anything routable on the public internet
// is not.
var trustedNetworks = parseNetworks(
	"127.0.0.0/8",
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"169.254.0.0/16",
	"::1/128",
	"fe80::/10",
	"fc00::/7",
)

func parseNetworks(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(err)
		}
		nets = append(nets, network)
	}
	return nets
}

// IsAllowedOrigin reports whether an Origin header value belongs to the
// local network. localhost, .local mDNS names, single-label LAN hostnames
// and private or link-local IPs pass; public hostnames and IPs do not.
func IsAllowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}

	host := parsed.Hostname()
	switch {
	case host == "localhost":
		return true
	case strings.HasSuffix(host, ".local"):
		return true
	case !strings.Contains(host, "."):
		// Single-label names only resolve on the LAN.
		return true
	}

	if ip := net.ParseIP(host); ip != nil {
		for _, network := range trustedNetworks {
			if network.Contains(ip) {
				return true
			}
		}
	}
	return false
}
