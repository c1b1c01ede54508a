package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/logrusorgru/aurora/v4"
	"github.com/olekukonko/tablewriter"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lansweep/pkg/peerdiscovery/pingsweep"
)

// sink is a single destination for scan output
type sink struct {
	w  io.Writer
	au *aurora.Aurora
}

// writer fans reports out to the console and the optional output file
type writer struct {
	sinks []sink
	json  bool
	file  io.Closer
}

func newWriter(console io.Writer, file io.WriteCloser, jsonOutput, noColor bool) *writer {
	w := &writer{json: jsonOutput}
	w.sinks = append(w.sinks, sink{w: console, au: aurora.New(aurora.WithColors(!noColor))})
	if file != nil {
		w.sinks = append(w.sinks, sink{w: file, au: aurora.New(aurora.WithColors(false))})
		w.file = file
	}
	return w
}

// jsonReport renders the elapsed time as a human readable duration
type jsonReport struct {
	*pingsweep.Report
	Elapsed string `json:"elapsed"`
}

func (w *writer) notice(format string, args ...any) {
	if w.json {
		gologger.Info().Msgf(format, args...)
		return
	}
	for _, s := range w.sinks {
		_, _ = fmt.Fprintf(s.w, format+"\n", args...)
	}
}

func (w *writer) noNetworks() {
	w.notice("No network interfaces found.")
}

func (w *writer) starting() {
	w.notice("Starting network scan...")
}

func (w *writer) scanning(network *net.IPNet) {
	w.notice("Scanning %s network...", network)
}

func (w *writer) report(report *pingsweep.Report) error {
	if w.json {
		data, err := json.Marshal(jsonReport{Report: report, Elapsed: report.Elapsed.Round(time.Millisecond).String()})
		if err != nil {
			return err
		}
		for _, s := range w.sinks {
			if _, err := fmt.Fprintf(s.w, "%s\n", data); err != nil {
				return err
			}
		}
		return nil
	}

	for _, s := range w.sinks {
		if len(report.Devices) == 0 {
			_, _ = fmt.Fprintln(s.w, "No devices found in this range.")
		} else {
			_, _ = fmt.Fprintln(s.w, "Discovered devices:")
			s.table(report.Devices)
		}
		_, _ = fmt.Fprintf(s.w, "Scan completed in %.2f seconds\n", report.Elapsed.Seconds())
	}
	return nil
}

func (s sink) table(devices []pingsweep.Device) {
	table := tablewriter.NewWriter(s.w)
	table.SetHeader([]string{"IP", "MAC", "Vendor", "Hostname", "Status"})
	table.SetAutoWrapText(false)
	for _, device := range devices {
		table.Append([]string{device.Address, device.HardwareAddress, device.Vendor, device.Hostname, s.status(device.Status)})
	}
	table.Render()
}

func (s sink) status(status pingsweep.Status) string {
	switch status {
	case pingsweep.StatusOnline:
		return s.au.Green(status).String()
	case pingsweep.StatusUnresponsive:
		return s.au.Red(status).String()
	default:
		return string(status)
	}
}

// Close closes the output file if any
func (w *writer) Close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}
