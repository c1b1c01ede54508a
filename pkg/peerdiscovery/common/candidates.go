package common

import (
	"fmt"
	"net"

	"github.com/projectdiscovery/mapcidr"
)

// Candidates expands an IPv4 /24 network into its 254 host addresses,
// {base}.1 through {base}.254, in ascending order.
func Candidates(network *net.IPNet) ([]string, error) {
	if network == nil {
		return nil, fmt.Errorf("nil network")
	}
	ones, bits := network.Mask.Size()
	if network.IP.To4() == nil || ones != 24 || bits != 32 {
		return nil, fmt.Errorf("network %s is not an IPv4 /24 network", network.String())
	}

	cidrStr := network.String()
	ips, err := mapcidr.IPAddresses(cidrStr)
	if err != nil {
		return nil, fmt.Errorf("failed to expand CIDR %s: %w", cidrStr, err)
	}

	candidates := make([]string, 0, len(ips))
	for _, ipStr := range ips {
		ip := net.ParseIP(ipStr)
		if ip == nil {
			continue
		}
		// Skip network and broadcast addresses
		if IsNetworkOrBroadcast(ip, network) {
			continue
		}
		candidates = append(candidates, ip.String())
	}
	return candidates, nil
}
