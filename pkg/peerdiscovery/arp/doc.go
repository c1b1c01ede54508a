// Package arp extracts hardware addresses from neighbor-table output.
//
// The neighbor table is queried through the OS `arp` utility; this package
// only deals with what comes back:
//   - ExtractMAC pulls the first MAC-looking token out of free-form command output
//   - ReadProcEntry reads a single entry from /proc/net/arp, used on Linux hosts
//     that do not ship the net-tools `arp` binary
//   - Vendor maps a MAC to its IEEE OUI registrant
package arp
