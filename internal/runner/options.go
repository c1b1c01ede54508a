package runner

import (
	"os"
	"strconv"
	"time"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/projectdiscovery/lansweep/pkg/peerdiscovery/pingsweep"
	"github.com/projectdiscovery/lansweep/pkg/version"
	envutil "github.com/projectdiscovery/utils/env"
	fileutil "github.com/projectdiscovery/utils/file"
)

var (
	PingConcurrencyEnv   = envutil.GetEnvOrDefault("LANSWEEP_PING_CONCURRENCY", "")
	DetailConcurrencyEnv = envutil.GetEnvOrDefault("LANSWEEP_DETAIL_CONCURRENCY", "")
)

const (
	PingModeExec = "exec"
	PingModeICMP = "icmp"
)

// Options contains the configuration options for a sweep.
type Options struct {
	Targets    goflags.StringSlice
	ConfigFile string

	PingMode          string
	PingTimeout       int // milliseconds
	NeighborTimeout   int // milliseconds
	NameTimeout       int // milliseconds
	PingConcurrency   int
	DetailConcurrency int

	Output  string
	JSON    bool
	NoColor bool
	Silent  bool
	Verbose bool
	Debug   bool
	Version bool
}

// ParseOptions parses the command line flags provided by a user
func ParseOptions() *Options {
	options := &Options{}
	flagSet := goflags.NewFlagSet()

	flagSet.SetDescription(`lansweep discovers live hosts on the local /24 networks and resolves their hardware address and name`)

	defaultTimeout := int(pingsweep.DefaultProbeTimeout / time.Millisecond)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringSliceVarP(&options.Targets, "target", "t", nil, "ips or cidrs whose /24 networks to sweep (default: local interfaces)", goflags.CommaSeparatedStringSliceOptions),
	)

	flagSet.CreateGroup("probe", "Probe",
		flagSet.StringVarP(&options.PingMode, "ping-mode", "pm", PingModeExec, "reachability probe backend (exec, icmp)"),
		flagSet.IntVarP(&options.PingTimeout, "ping-timeout", "pt", defaultTimeout, "reachability probe timeout in milliseconds"),
		flagSet.IntVarP(&options.NeighborTimeout, "arp-timeout", "at", defaultTimeout, "neighbor table lookup timeout in milliseconds"),
		flagSet.IntVarP(&options.NameTimeout, "dns-timeout", "dt", defaultTimeout, "reverse name lookup timeout in milliseconds"),
	)

	flagSet.CreateGroup("rate-limit", "Rate-Limit",
		flagSet.IntVarP(&options.PingConcurrency, "ping-concurrency", "pc", envInt(PingConcurrencyEnv, pingsweep.DefaultPingConcurrency), "maximum number of reachability probes in flight"),
		flagSet.IntVarP(&options.DetailConcurrency, "detail-concurrency", "dc", envInt(DetailConcurrencyEnv, pingsweep.DefaultDetailConcurrency), "maximum number of hosts enriched in parallel"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&options.Output, "output", "o", "", "file to write output to"),
		flagSet.BoolVarP(&options.JSON, "json", "j", false, "write reports in JSONL(ines) format"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable output content coloring (ANSI escape codes)"),
		flagSet.BoolVar(&options.Silent, "silent", false, "display reports only"),
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "show verbose output"),
		flagSet.BoolVar(&options.Debug, "debug", false, "show every failed probe"),
		flagSet.BoolVar(&options.Version, "version", false, "show version of the project"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&options.ConfigFile, "config", "", "path to the lansweep yaml configuration file"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}

	if options.ConfigFile != "" {
		if !fileutil.FileExists(options.ConfigFile) {
			gologger.Fatal().Msgf("config file %s does not exist\n", options.ConfigFile)
		}
		if err := flagSet.MergeConfigFile(options.ConfigFile); err != nil {
			gologger.Fatal().Msgf("Could not read config: %s\n", err)
		}
	}

	options.configureOutput()

	if !options.Silent && !options.JSON {
		showBanner()
	}

	if options.Version {
		gologger.Info().Msgf("Current Version: %s\n", version.GetVersion())
		os.Exit(0)
	}

	options.normalize()

	return options
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.Debug {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}

// normalize resets out of range values to their defaults
func (options *Options) normalize() {
	defaultTimeout := int(pingsweep.DefaultProbeTimeout / time.Millisecond)

	if options.PingMode != PingModeExec && options.PingMode != PingModeICMP {
		gologger.Warning().Msgf("unknown ping mode %q, using %s", options.PingMode, PingModeExec)
		options.PingMode = PingModeExec
	}
	for _, timeout := range []*int{&options.PingTimeout, &options.NeighborTimeout, &options.NameTimeout} {
		if *timeout <= 0 {
			*timeout = defaultTimeout
		}
	}
	// Ensure parallelism values are at least 1
	if options.PingConcurrency < 1 {
		options.PingConcurrency = 1
	}
	if options.DetailConcurrency < 1 {
		options.DetailConcurrency = 1
	}
}

// ScanConfig translates the options into a scanner configuration
func (options *Options) ScanConfig() pingsweep.Config {
	return pingsweep.Config{
		PingTimeout:       time.Duration(options.PingTimeout) * time.Millisecond,
		NeighborTimeout:   time.Duration(options.NeighborTimeout) * time.Millisecond,
		NameTimeout:       time.Duration(options.NameTimeout) * time.Millisecond,
		PingConcurrency:   options.PingConcurrency,
		DetailConcurrency: options.DetailConcurrency,
	}
}

func envInt(value string, fallback int) int {
	if val, err := strconv.Atoi(value); err == nil && val > 0 {
		return val
	}
	return fallback
}
