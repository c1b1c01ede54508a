package probe

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lansweep/pkg/peerdiscovery/arp"
	"github.com/projectdiscovery/lansweep/pkg/peerdiscovery/guard"
)

// UnknownHardwareAddress is reported when no hardware address could be found
const UnknownHardwareAddress = "unknown"

// ErrNoReply is returned by Ping when the echo request went unanswered
var ErrNoReply = errors.New("no echo reply")

// hostnamePattern extracts the PTR target from nslookup output
var hostnamePattern = regexp.MustCompile(`name = (.+)\.`)

// Prober is the process boundary of a scan. Each method performs one lookup
// for one address and returns the raw textual output.
type Prober interface {
	// Ping sends exactly one echo request. A nil error means a reply was seen.
	Ping(ctx context.Context, addr string) ([]byte, error)
	// Neighbor queries the local neighbor-resolution table.
	Neighbor(ctx context.Context, addr string) ([]byte, error)
	// ReverseLookup resolves addr to a name via the system resolver.
	ReverseLookup(ctx context.Context, addr string) ([]byte, error)
}

// Reachability is the outcome of a reachability probe
type Reachability struct {
	Address   string
	Reachable bool
}

// Reachable reports whether addr answered a single echo request within timeout.
func Reachable(ctx context.Context, p Prober, addr string, timeout time.Duration) Reachability {
	_, err := guard.Do(ctx, timeout, func(ctx context.Context) ([]byte, error) {
		return p.Ping(ctx, addr)
	})
	if err != nil {
		gologger.Debug().Msgf("ping %s failed: %v", addr, err)
	}
	return Reachability{Address: addr, Reachable: err == nil}
}

// HardwareAddress returns the hardware address the neighbor table holds for
// addr, or UnknownHardwareAddress.
func HardwareAddress(ctx context.Context, p Prober, addr string, timeout time.Duration) string {
	output, err := guard.Do(ctx, timeout, func(ctx context.Context) ([]byte, error) {
		return p.Neighbor(ctx, addr)
	})
	if err != nil {
		gologger.Debug().Msgf("neighbor lookup for %s failed: %v", addr, err)
		return UnknownHardwareAddress
	}
	if mac := arp.ExtractMAC(output); mac != "" {
		return mac
	}
	gologger.Debug().Msgf("no hardware address for %s in neighbor table", addr)
	return UnknownHardwareAddress
}

// Hostname returns the reverse-resolved name of addr, or addr itself so that
// callers always have something displayable.
func Hostname(ctx context.Context, p Prober, addr string, timeout time.Duration) string {
	output, err := guard.Do(ctx, timeout, func(ctx context.Context) ([]byte, error) {
		return p.ReverseLookup(ctx, addr)
	})
	if err != nil {
		gologger.Debug().Msgf("name lookup for %s failed: %v", addr, err)
		return addr
	}
	name := ExtractHostname(output, "")
	if name == "" {
		gologger.Debug().Msgf("no name record for %s", addr)
		return addr
	}
	return name
}

// ExtractHostname parses nslookup style output, returning fallback on a miss.
func ExtractHostname(output []byte, fallback string) string {
	match := hostnamePattern.FindSubmatch(output)
	if len(match) < 2 || len(match[1]) == 0 {
		return fallback
	}
	return string(match[1])
}
