package runner

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lansweep/pkg/peerdiscovery/common"
	"github.com/projectdiscovery/lansweep/pkg/peerdiscovery/pingsweep"
	"github.com/projectdiscovery/lansweep/pkg/peerdiscovery/probe"
	"github.com/projectdiscovery/utils/errkit"
	fileutil "github.com/projectdiscovery/utils/file"
)

// enumerator returns the /24 networks to sweep
type enumerator func(ctx context.Context) ([]*net.IPNet, error)

// Runner contains the internal logic of the program
type Runner struct {
	options   *Options
	scanner   *pingsweep.Scanner
	enumerate enumerator
	output    *writer
}

// NewRunner instance
func NewRunner(options *Options) (*Runner, error) {
	var prober probe.Prober
	wait := time.Duration(options.PingTimeout) * time.Millisecond
	switch options.PingMode {
	case PingModeICMP:
		prober = probe.NewICMPProber(wait)
	default:
		prober = probe.NewExecProber(wait)
	}

	var file *os.File
	if options.Output != "" {
		if dir := filepath.Dir(options.Output); dir != "" && !fileutil.FolderExists(dir) {
			if err := fileutil.CreateFolder(dir); err != nil {
				return nil, errkit.Wrapf(err, "could not create output folder %s", dir)
			}
		}
		f, err := os.Create(options.Output)
		if err != nil {
			return nil, errkit.Wrapf(err, "could not create output file %s", options.Output)
		}
		file = f
	}

	var out *writer
	if file != nil {
		out = newWriter(os.Stdout, file, options.JSON, options.NoColor)
	} else {
		out = newWriter(os.Stdout, nil, options.JSON, options.NoColor)
	}
	return newRunner(options, pingsweep.NewScanner(prober, options.ScanConfig()), common.GetLocalNetworks24, out), nil
}

func newRunner(options *Options, scanner *pingsweep.Scanner, enumerate enumerator, out *writer) *Runner {
	return &Runner{
		options:   options,
		scanner:   scanner,
		enumerate: enumerate,
		output:    out,
	}
}

// Run sweeps every network in turn
func (r *Runner) Run(ctx context.Context) error {
	networks, err := r.networks(ctx)
	if err != nil {
		return err
	}
	if len(networks) == 0 {
		r.output.noNetworks()
		return nil
	}
	r.output.starting()

	for _, network := range networks {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.output.scanning(network)
		report, err := r.scanner.Scan(ctx, network)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			gologger.Error().Msgf("Could not scan %s: %s\n", network, err)
			continue
		}
		if err := r.output.report(report); err != nil {
			return errkit.Wrap(err, "could not write report")
		}
	}
	return nil
}

// networks returns the user supplied targets or the local interface networks
func (r *Runner) networks(ctx context.Context) ([]*net.IPNet, error) {
	if len(r.options.Targets) > 0 {
		networks, err := common.ParseTargets(r.options.Targets)
		if err != nil {
			return nil, errkit.Wrap(err, "invalid target")
		}
		return networks, nil
	}
	networks, err := r.enumerate(ctx)
	if err != nil {
		return nil, errkit.Wrap(err, "could not enumerate local networks")
	}
	return networks, nil
}

// Close the runner instance
func (r *Runner) Close() {
	if err := r.output.Close(); err != nil {
		gologger.Warning().Msgf("Could not close output file: %s\n", err)
	}
}
