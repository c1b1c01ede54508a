package common

import (
	"fmt"
	"net"
	"strings"

	"github.com/projectdiscovery/gologger"
	sliceutil "github.com/projectdiscovery/utils/slice"
)

// ParseTargets turns IPs and CIDRs into the deduplicated list of /24 networks
// covering them. Only IPv4 targets are accepted and anything wider or narrower
// than a /24 is folded onto the /24 of its base address.
func ParseTargets(targets []string) ([]*net.IPNet, error) {
	var keys []string
	byKey := make(map[string]*net.IPNet)

	for _, target := range targets {
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}

		var (
			ip     net.IP
			prefix = -1
		)
		if parsed, ipnet, err := net.ParseCIDR(target); err == nil {
			ip = parsed
			prefix, _ = ipnet.Mask.Size()
		} else {
			ip = net.ParseIP(target)
		}
		if ip == nil {
			return nil, fmt.Errorf("invalid target format: %s (must be CIDR or IP)", target)
		}
		if ip.To4() == nil {
			return nil, fmt.Errorf("invalid target %s: only IPv4 is supported", target)
		}

		network := To24(ip)
		if prefix != -1 && prefix != 24 {
			gologger.Warning().Msgf("target %s is a /%d, only %s will be scanned", target, prefix, network)
		}
		key := network.String()
		byKey[key] = network
		keys = append(keys, key)
	}

	keys = sliceutil.Dedupe(keys)
	networks := make([]*net.IPNet, 0, len(keys))
	for _, key := range keys {
		networks = append(networks, byKey[key])
	}
	return networks, nil
}
