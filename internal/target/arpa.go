package target

import "strings"

// ReverseOctets returns a dotted-quad IPv4 literal with its octets reversed.
// "1.2.3.4" → "4.3.2.1". Used for in-addr.arpa and Team Cymru query names.
func ReverseOctets(ip string) string {
	octets := strings.Split(ip, ".")
	for i, j := 0, len(octets)-1; i < j; i, j = i+1, j-1 {
		octets[i], octets[j] = octets[j], octets[i]
	}
	return strings.Join(octets, ".")
}

// ReverseNibbles expands an IPv6 literal, strips the colons, and returns the
// 32 hex digits reversed and dot-separated, as used for ip6.arpa and
// Team Cymru origin6 query names.
func ReverseNibbles(ip string) string {
	hex := strings.ReplaceAll(ExpandIPv6(ip), ":", "")
	nibbles := make([]string, 0, len(hex))
	for i := len(hex) - 1; i >= 0; i-- {
		nibbles = append(nibbles, string(hex[i]))
	}
	return strings.Join(nibbles, ".")
}

// ArpaName returns the reverse-DNS name used for a PTR query against the
// given IP literal. The construction is purely textual; no network access.
// Returns "" for non-IP kinds.
func ArpaName(ip string, kind Kind) string {
	switch kind {
	case IPv4:
		return ReverseOctets(ip) + ".in-addr.arpa"
	case IPv6:
		return ReverseNibbles(ip) + ".ip6.arpa"
	default:
		return ""
	}
}
