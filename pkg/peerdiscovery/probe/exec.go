package probe

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/projectdiscovery/lansweep/pkg/peerdiscovery/arp"
)

// waitDelay bounds how long Wait blocks on output pipes after the process was killed
const waitDelay = 100 * time.Millisecond

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecProber implements Prober by spawning system utilities
type ExecProber struct {
	platform Platform
	wait     time.Duration
	procARP  string
	run      runFunc
}

// NewExecProber returns a prober for the current host. wait is the
// network-level reply timeout handed to ping.
func NewExecProber(wait time.Duration) *ExecProber {
	return &ExecProber{
		platform: CurrentPlatform(),
		wait:     wait,
		procARP:  arp.ProcPath,
		run:      runCommand,
	}
}

// Platform returns the command syntax in use
func (e *ExecProber) Platform() Platform {
	return e.platform
}

// Ping runs a single-packet ping.
func (e *ExecProber) Ping(ctx context.Context, addr string) ([]byte, error) {
	name, args := PingCommand(e.platform, addr, e.wait)
	output, err := e.run(ctx, name, args...)
	if err != nil {
		return output, err
	}
	// windows ping exits 0 on "destination host unreachable" relayed by the gateway
	if e.platform == Windows && !bytes.Contains(bytes.ToUpper(output), []byte("TTL=")) {
		return output, ErrNoReply
	}
	return output, nil
}

// Neighbor queries the neighbor table through arp. Linux hosts without the
// arp binary fall back to the kernel table.
func (e *ExecProber) Neighbor(ctx context.Context, addr string) ([]byte, error) {
	name, args := NeighborCommand(e.platform, addr)
	output, err := e.run(ctx, name, args...)
	if err != nil && e.platform == Linux && errors.Is(err, exec.ErrNotFound) {
		return arp.ReadProcEntry(e.procARP, addr)
	}
	return output, err
}

// ReverseLookup runs nslookup against addr.
func (e *ExecProber) ReverseLookup(ctx context.Context, addr string) ([]byte, error) {
	name, args := ReverseLookupCommand(e.platform, addr)
	return e.run(ctx, name, args...)
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	configureCommand(cmd)
	return cmd.Output()
}
