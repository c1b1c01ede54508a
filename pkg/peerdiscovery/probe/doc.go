// Package probe implements the single-target probes used by a sweep:
// reachability, hardware address lookup and reverse name resolution.
//
// The OS facing side is the Prober interface. ExecProber spawns the usual
// system utilities (ping, arp, nslookup) with the syntax of the host OS and
// returns their raw output; ICMPProber swaps the ping utility for a native
// ICMP echo. Tests substitute their own Prober.
//
// The primitives on top of a Prober never fail. Every probe is time-boxed with
// guard.Do and any timeout, command failure or unparseable output collapses to
// the documented default:
//   - Reachable:       Reachable=false
//   - HardwareAddress: UnknownHardwareAddress
//   - Hostname:        the probed address itself
package probe
