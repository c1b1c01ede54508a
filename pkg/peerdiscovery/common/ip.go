package common

import "net"

// IsNetworkOrBroadcast checks if an IPv4 address is the network or broadcast
// address of network.
func IsNetworkOrBroadcast(ip net.IP, network *net.IPNet) bool {
	if network == nil {
		return false
	}

	if ip.Equal(network.IP) {
		return true
	}

	if ip4 := ip.To4(); ip4 != nil {
		base := network.IP.To4()
		if base == nil || len(network.Mask) != net.IPv4len {
			return false
		}
		broadcast := make(net.IP, net.IPv4len)
		for i := range broadcast {
			broadcast[i] = base[i] | ^network.Mask[i]
		}
		return ip4.Equal(broadcast)
	}

	return false
}
