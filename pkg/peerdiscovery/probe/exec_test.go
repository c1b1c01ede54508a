package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

type recordedRun struct {
	name string
	args []string
}

func fakeRun(output string, err error, calls *[]recordedRun) runFunc {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, recordedRun{name: name, args: args})
		return []byte(output), err
	}
}

func TestPingCommand(t *testing.T) {
	tests := []struct {
		platform Platform
		wait     time.Duration
		wantArgs []string
	}{
		{platform: Linux, wait: time.Second, wantArgs: []string{"-c", "1", "-W", "1", "10.0.0.1"}},
		{platform: Linux, wait: 300 * time.Millisecond, wantArgs: []string{"-c", "1", "-W", "1", "10.0.0.1"}},
		{platform: Darwin, wait: time.Second, wantArgs: []string{"-c", "1", "-t", "1", "10.0.0.1"}},
		{platform: Windows, wait: time.Second, wantArgs: []string{"-n", "1", "-w", "1000", "10.0.0.1"}},
		{platform: Windows, wait: 0, wantArgs: []string{"-n", "1", "-w", "1000", "10.0.0.1"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.platform, tt.wait), func(t *testing.T) {
			name, args := PingCommand(tt.platform, "10.0.0.1", tt.wait)
			if name != "ping" {
				t.Errorf("PingCommand() name = %q", name)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("PingCommand() args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestNeighborAndReverseCommands(t *testing.T) {
	if _, args := NeighborCommand(Windows, "10.0.0.1"); !reflect.DeepEqual(args, []string{"-a", "10.0.0.1"}) {
		t.Errorf("windows neighbor args = %v", args)
	}
	if _, args := NeighborCommand(Linux, "10.0.0.1"); !reflect.DeepEqual(args, []string{"-n", "10.0.0.1"}) {
		t.Errorf("linux neighbor args = %v", args)
	}
	if name, args := ReverseLookupCommand(Darwin, "10.0.0.1"); name != "nslookup" || !reflect.DeepEqual(args, []string{"10.0.0.1"}) {
		t.Errorf("reverse lookup = %s %v", name, args)
	}
}

func TestExecProberPing(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		output   string
		runErr   error
		wantErr  bool
	}{
		{name: "linux reply", platform: Linux, output: "64 bytes from 10.0.0.1: icmp_seq=1 ttl=64", wantErr: false},
		{name: "linux non-zero exit", platform: Linux, runErr: errors.New("exit status 1"), wantErr: true},
		{name: "windows reply", platform: Windows, output: "Reply from 10.0.0.1: bytes=32 time<1ms TTL=128", wantErr: false},
		{name: "windows unreachable with exit 0", platform: Windows, output: "Reply from 10.0.0.254: Destination host unreachable.", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []recordedRun
			e := &ExecProber{platform: tt.platform, wait: time.Second, run: fakeRun(tt.output, tt.runErr, &calls)}
			_, err := e.Ping(context.Background(), "10.0.0.1")
			if (err != nil) != tt.wantErr {
				t.Errorf("Ping() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(calls) != 1 || calls[0].name != "ping" {
				t.Errorf("expected exactly one ping invocation, got %v", calls)
			}
		})
	}
}

func TestExecProberNeighborProcFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arp")
	table := "IP address       HW type     Flags       HW address            Mask     Device\n" +
		"10.0.0.5         0x1         0x2         de:ad:be:ef:00:05     *        eth0\n"
	if err := os.WriteFile(path, []byte(table), 0o644); err != nil {
		t.Fatal(err)
	}

	var calls []recordedRun
	missing := &exec.Error{Name: "arp", Err: exec.ErrNotFound}
	e := &ExecProber{platform: Linux, procARP: path, run: fakeRun("", missing, &calls)}

	got := HardwareAddress(context.Background(), e, "10.0.0.5", time.Second)
	if got != "de:ad:be:ef:00:05" {
		t.Errorf("HardwareAddress() via proc fallback = %q", got)
	}

	// no fallback on other platforms
	e.platform = Darwin
	if got := HardwareAddress(context.Background(), e, "10.0.0.5", time.Second); got != UnknownHardwareAddress {
		t.Errorf("HardwareAddress() on darwin = %q, want %q", got, UnknownHardwareAddress)
	}
}

func TestExecProberReverseLookup(t *testing.T) {
	var calls []recordedRun
	e := &ExecProber{platform: Linux, run: fakeRun("5.0.0.10.in-addr.arpa\tname = nas.home.\n", nil, &calls)}

	if got := Hostname(context.Background(), e, "10.0.0.5", time.Second); got != "nas.home" {
		t.Errorf("Hostname() = %q, want nas.home", got)
	}
	if len(calls) != 1 || strings.Join(calls[0].args, " ") != "10.0.0.5" {
		t.Errorf("unexpected invocation: %v", calls)
	}
}
