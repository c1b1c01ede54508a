package arp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ProcPath is the Linux kernel ARP table
const ProcPath = "/proc/net/arp"

// ReadProcEntry returns the raw kernel table line for ip so callers can run
// it through ExtractMAC like any other command output.
func ReadProcEntry(path, ip string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return procEntry(f, ip)
}

// procEntry scans "IP HW-type Flags HW-address Mask Device" rows for ip.
// Rows without a resolved hardware address do not count as a match.
func procEntry(r io.Reader, ip string) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] != ip {
			continue
		}
		if fields[3] == "00:00:00:00:00:00" || ExtractMAC([]byte(fields[3])) == "" {
			break
		}
		return []byte(strings.TrimSpace(scanner.Text())), nil
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("no complete arp entry for %s", ip)
}
