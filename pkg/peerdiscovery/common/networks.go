package common

import (
	"context"
	"net"
	"slices"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// mask24 is the only prefix length a sweep operates on
var mask24 = net.CIDRMask(24, 32)

// GetLocalNetworks24 returns the /24 networks of all up, non-loopback
// interfaces carrying an IPv4 address, in interface order without duplicates.
func GetLocalNetworks24(ctx context.Context) ([]*net.IPNet, error) {
	interfaces, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return networks24(interfaces), nil
}

func networks24(interfaces psnet.InterfaceStatList) []*net.IPNet {
	var networks []*net.IPNet
	seen := make(map[string]struct{})

	for _, iface := range interfaces {
		// Skip loopback and down interfaces
		if slices.Contains(iface.Flags, "loopback") {
			continue
		}
		if !slices.Contains(iface.Flags, "up") {
			continue
		}

		for _, addr := range iface.Addrs {
			ip, _, err := net.ParseCIDR(addr.Addr)
			if err != nil {
				ip = net.ParseIP(addr.Addr)
			}
			// Only process IPv4 addresses
			if ip == nil || ip.To4() == nil || ip.IsLoopback() {
				continue
			}

			network24 := To24(ip)
			key := network24.String()
			if _, exists := seen[key]; exists {
				continue
			}
			seen[key] = struct{}{}

			networks = append(networks, network24)
		}
	}

	return networks
}

// To24 returns the /24 network containing the IPv4 address ip.
func To24(ip net.IP) *net.IPNet {
	return &net.IPNet{
		IP:   ip.To4().Mask(mask24),
		Mask: mask24,
	}
}
