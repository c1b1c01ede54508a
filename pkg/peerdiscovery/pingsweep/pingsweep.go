package pingsweep

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lansweep/pkg/peerdiscovery/arp"
	"github.com/projectdiscovery/lansweep/pkg/peerdiscovery/batch"
	"github.com/projectdiscovery/lansweep/pkg/peerdiscovery/common"
	"github.com/projectdiscovery/lansweep/pkg/peerdiscovery/probe"
	"github.com/rs/xid"
)

// Status is the state of a discovered device
type Status string

const (
	StatusOnline       Status = "Online"
	StatusUnresponsive Status = "Unresponsive"
)

// Device is a host that answered the reachability phase
type Device struct {
	Address         string `json:"ip"`
	HardwareAddress string `json:"mac"`
	Hostname        string `json:"hostname"`
	Vendor          string `json:"vendor,omitempty"`
	Status          Status `json:"status"`
}

// Report is the result of scanning one network
type Report struct {
	ID         string        `json:"id"`
	Subnet     string        `json:"subnet"`
	Candidates int           `json:"candidates"`
	Devices    []Device      `json:"devices"`
	Started    time.Time     `json:"started"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Config holds per-scanner timeouts and concurrency ceilings
type Config struct {
	PingTimeout       time.Duration
	NeighborTimeout   time.Duration
	NameTimeout       time.Duration
	PingConcurrency   int
	DetailConcurrency int
}

const (
	DefaultProbeTimeout      = time.Second
	DefaultPingConcurrency   = 50
	DefaultDetailConcurrency = 10
)

// DefaultConfig returns the default scanner configuration
func DefaultConfig() Config {
	return Config{
		PingTimeout:       DefaultProbeTimeout,
		NeighborTimeout:   DefaultProbeTimeout,
		NameTimeout:       DefaultProbeTimeout,
		PingConcurrency:   DefaultPingConcurrency,
		DetailConcurrency: DefaultDetailConcurrency,
	}
}

// withDefaults replaces unset values with their defaults
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.PingTimeout <= 0 {
		c.PingTimeout = def.PingTimeout
	}
	if c.NeighborTimeout <= 0 {
		c.NeighborTimeout = def.NeighborTimeout
	}
	if c.NameTimeout <= 0 {
		c.NameTimeout = def.NameTimeout
	}
	if c.PingConcurrency < 1 {
		c.PingConcurrency = def.PingConcurrency
	}
	if c.DetailConcurrency < 1 {
		c.DetailConcurrency = def.DetailConcurrency
	}
	return c
}

// Scanner runs two-phase sweeps through a Prober
type Scanner struct {
	prober probe.Prober
	config Config
	vendor func(mac string) string
}

// NewScanner creates a scanner. Zero values in config fall back to DefaultConfig.
func NewScanner(prober probe.Prober, config Config) *Scanner {
	return &Scanner{
		prober: prober,
		config: config.withDefaults(),
		vendor: arp.Vendor,
	}
}

// Config returns the effective configuration
func (s *Scanner) Config() Config {
	return s.config
}

// Scan sweeps an IPv4 /24 network and returns the devices found, in address order.
func (s *Scanner) Scan(ctx context.Context, network *net.IPNet) (*Report, error) {
	started := time.Now()

	candidates, err := common.Candidates(network)
	if err != nil {
		return nil, err
	}

	reachable, err := s.sweep(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("reachability phase failed for %s: %w", network, err)
	}
	// hosts left undispatched by a cancellation must not read as down
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("reachability phase interrupted for %s: %w", network, err)
	}
	gologger.Verbose().Msgf("%s: %d/%d hosts answered in %s", network, len(reachable), len(candidates), time.Since(started).Round(time.Millisecond))

	detailStart := time.Now()
	devices, err := s.enrich(ctx, reachable)
	if err != nil {
		return nil, fmt.Errorf("detail phase failed for %s: %w", network, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("detail phase interrupted for %s: %w", network, err)
	}
	gologger.Verbose().Msgf("%s: details for %d hosts gathered in %s", network, len(devices), time.Since(detailStart).Round(time.Millisecond))

	return &Report{
		ID:         xid.New().String(),
		Subnet:     network.String(),
		Candidates: len(candidates),
		Devices:    devices,
		Started:    started,
		Elapsed:    time.Since(started),
	}, nil
}

// sweep returns the candidates that answered an echo request
func (s *Scanner) sweep(ctx context.Context, candidates []string) ([]string, error) {
	outcomes, err := batch.Run(ctx, candidates, s.config.PingConcurrency, func(ctx context.Context, addr string) (probe.Reachability, error) {
		return probe.Reachable(ctx, s.prober, addr, s.config.PingTimeout), nil
	})
	if err != nil {
		return nil, err
	}

	var reachable []string
	for _, outcome := range outcomes {
		if outcome.OK() && outcome.Value.Reachable {
			reachable = append(reachable, outcome.Value.Address)
		}
	}
	return reachable, nil
}

// enrich gathers details for every reachable address
func (s *Scanner) enrich(ctx context.Context, reachable []string) ([]Device, error) {
	outcomes, err := batch.Run(ctx, reachable, s.config.DetailConcurrency, s.details)
	if err != nil {
		return nil, err
	}

	devices := make([]Device, 0, len(outcomes))
	for i, outcome := range outcomes {
		if !outcome.OK() {
			gologger.Debug().Msgf("details for %s failed: %v", reachable[i], outcome.Err)
			devices = append(devices, Device{
				Address:         reachable[i],
				HardwareAddress: probe.UnknownHardwareAddress,
				Hostname:        reachable[i],
				Status:          StatusUnresponsive,
			})
			continue
		}
		devices = append(devices, outcome.Value)
	}
	return devices, nil
}

// details runs the hardware address and name lookups for addr concurrently
func (s *Scanner) details(ctx context.Context, addr string) (Device, error) {
	if err := ctx.Err(); err != nil {
		return Device{}, err
	}

	var (
		wg       sync.WaitGroup
		mac      string
		hostname string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		mac = probe.HardwareAddress(ctx, s.prober, addr, s.config.NeighborTimeout)
	}()
	go func() {
		defer wg.Done()
		hostname = probe.Hostname(ctx, s.prober, addr, s.config.NameTimeout)
	}()
	wg.Wait()

	device := Device{
		Address:         addr,
		HardwareAddress: mac,
		Hostname:        hostname,
		Status:          StatusOnline,
	}
	if mac != probe.UnknownHardwareAddress {
		device.Vendor = s.vendor(mac)
	}
	return device, nil
}
