package arp

import (
	"net"
	"regexp"
	"strings"

	"github.com/endobit/oui"
)

// macPattern matches a colon or hyphen delimited 6 octet hardware address
var macPattern = regexp.MustCompile(`([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}`)

// ExtractMAC returns the first hardware address found in output, as written
// by the tool (case and delimiter preserved), or an empty string.
func ExtractMAC(output []byte) string {
	return string(macPattern.Find(output))
}

// Vendor returns the OUI registrant for mac or an empty string when unknown.
func Vendor(mac string) string {
	if mac == "" {
		return ""
	}
	normalized := strings.ToLower(strings.ReplaceAll(mac, "-", ":"))
	if _, err := net.ParseMAC(normalized); err != nil {
		return ""
	}
	return oui.Vendor(normalized)
}
