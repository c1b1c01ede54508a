// Package pingsweep discovers live hosts on an IPv4 /24 network and enriches
// them with a hardware address and a name.
//
// A scan runs two strictly sequential phases:
//   - Reachability: every candidate address {base}.1..{base}.254 receives a
//     single echo request, at most Config.PingConcurrency at a time
//   - Detail: every reachable address gets a neighbor-table lookup and a
//     reverse name lookup, run concurrently per host, at most
//     Config.DetailConcurrency hosts at a time
//
// Each probe is time-boxed individually and failures stay local to the probe.
// Hosts that do not answer the echo request are left out of the report; hosts
// whose detail step fails are reported as Unresponsive.
//
// Example usage:
//
//	scanner := pingsweep.NewScanner(probe.NewExecProber(time.Second), pingsweep.DefaultConfig())
//	_, network, _ := net.ParseCIDR("192.168.1.0/24")
//	report, err := scanner.Scan(ctx, network)
//
// Limitations:
//   - Hosts with ICMP disabled or firewalled will not be reported
//   - Hardware addresses are only known for hosts on the local link
package pingsweep
