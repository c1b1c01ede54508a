package probe

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"
	osutils "github.com/projectdiscovery/utils/os"
)

// ICMPProber sends echo requests natively instead of spawning ping. Neighbor
// and name lookups still go through the embedded ExecProber.
type ICMPProber struct {
	*ExecProber
	wait       time.Duration
	privileged bool
}

// NewICMPProber returns a native prober. Windows requires raw sockets; other
// platforms use unprivileged UDP ICMP sockets.
func NewICMPProber(wait time.Duration) *ICMPProber {
	if wait <= 0 {
		wait = time.Second
	}
	return &ICMPProber{
		ExecProber: NewExecProber(wait),
		wait:       wait,
		privileged: osutils.IsWindows(),
	}
}

// Ping sends one ICMP echo request to addr.
func (p *ICMPProber) Ping(ctx context.Context, addr string) ([]byte, error) {
	pinger, err := probing.NewPinger(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create pinger for %s: %w", addr, err)
	}
	pinger.Count = 1
	pinger.Timeout = p.wait
	pinger.SetPrivileged(p.privileged)

	var reply []byte
	pinger.OnRecv = func(pkt *probing.Packet) {
		reply = fmt.Appendf(nil, "%d bytes from %s: icmp_seq=%d ttl=%d time=%s", pkt.Nbytes, pkt.IPAddr, pkt.Seq, pkt.TTL, pkt.Rtt)
	}

	done := make(chan error, 1)
	go func() {
		done <- pinger.Run()
	}()

	select {
	case err := <-done:
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		pinger.Stop()
		return nil, ctx.Err()
	}

	if pinger.Statistics().PacketsRecv == 0 {
		return nil, ErrNoReply
	}
	return reply, nil
}
