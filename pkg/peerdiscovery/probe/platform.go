package probe

import (
	"math"
	"strconv"
	"time"

	osutils "github.com/projectdiscovery/utils/os"
)

// Platform selects the command syntax of the system utilities
type Platform string

const (
	Linux   Platform = "linux"
	Darwin  Platform = "darwin"
	Windows Platform = "windows"
)

// CurrentPlatform returns the platform of the running host. Unix systems
// other than macOS use the Linux syntax.
func CurrentPlatform() Platform {
	switch {
	case osutils.IsWindows():
		return Windows
	case osutils.IsOSX():
		return Darwin
	default:
		return Linux
	}
}

// PingCommand builds a single-packet ping for addr waiting at most wait for the
// reply. Unix pings only take whole seconds, so wait is rounded up, minimum 1.
func PingCommand(platform Platform, addr string, wait time.Duration) (string, []string) {
	switch platform {
	case Windows:
		ms := wait.Milliseconds()
		if ms < 1 {
			ms = 1000
		}
		return "ping", []string{"-n", "1", "-w", strconv.FormatInt(ms, 10), addr}
	case Darwin:
		return "ping", []string{"-c", "1", "-t", waitSeconds(wait), addr}
	default:
		return "ping", []string{"-c", "1", "-W", waitSeconds(wait), addr}
	}
}

// NeighborCommand builds a neighbor-table query for addr.
func NeighborCommand(platform Platform, addr string) (string, []string) {
	if platform == Windows {
		return "arp", []string{"-a", addr}
	}
	return "arp", []string{"-n", addr}
}

// ReverseLookupCommand builds a reverse name lookup for addr.
func ReverseLookupCommand(_ Platform, addr string) (string, []string) {
	return "nslookup", []string{addr}
}

func waitSeconds(wait time.Duration) string {
	secs := int(math.Ceil(wait.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
