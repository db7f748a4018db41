// Package target classifies lookup targets and constructs reverse-DNS names.
// Classification is a pure string match; no network lookups are performed.
package target

import (
	"regexp"
	"strings"
)

// Kind is the classification of a lookup target.
type Kind int

// Target kinds. Anything that is not an IPv4 or IPv6 literal is a Domain.
const (
	Domain Kind = iota
	IPv4
	IPv6
)

// String returns the lowercase kind name used in JSON responses.
func (k Kind) String() string {
	switch k {
	case IPv4:
		return "ipv4"
	case IPv6:
		return "ipv6"
	default:
		return "domain"
	}
}

// IsIP reports whether the kind is an IP address literal of either family.
func (k Kind) IsIP() bool {
	return k == IPv4 || k == IPv6
}

// ipv4Re matches four dot-separated groups of 1-3 decimal digits, anchored at
// both ends. Range checking happens separately; leading zeros are accepted
// (e.g. "010.1.1.1"), matching the behaviour callers already depend on.
var ipv4Re = regexp.MustCompile(`^(\d{1,3})\.(\d{1,3})\.(\d{1,3})\.(\d{1,3})$`)

// hexGroupRe matches a single IPv6 group of 1-4 hex digits.
var hexGroupRe = regexp.MustCompile(`^[0-9a-fA-F]{1,4}$`)

// Classify determines whether s is an IPv4 literal, an IPv6 literal, or a
// domain name. It is total: malformed input (including colon-containing
// strings that fail the IPv6 grammar) falls through to Domain rather than
// producing an error. Downstream lookups for a mis-bucketed string simply
// fail to resolve.
func Classify(s string) Kind {
	if IsIPv4(s) {
		return IPv4
	}
	if strings.Contains(s, ":") && isIPv6(s) {
		return IPv6
	}
	return Domain
}

// IsIPv4 reports whether s is a dotted-quad IPv4 literal with every octet
// numerically in [0,255].
func IsIPv4(s string) bool {
	m := ipv4Re.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	for _, octet := range m[1:] {
		// Groups are 1-3 decimal digits, so only 3-digit groups can overflow.
		if len(octet) == 3 && octet > "255" {
			return false
		}
	}
	return true
}

// isIPv6 reports whether s is a valid IPv6 textual form: fully expanded,
// compressed with a single "::" at any group boundary, the unspecified
// address "::", or an IPv4-embedded form where the final group is a
// dotted quad. At most one "::" is permitted (RFC 4291).
func isIPv6(s string) bool {
	if s == "::" {
		return true
	}
	if strings.Contains(s, ":::") {
		return false
	}
	halves := strings.Split(s, "::")
	if len(halves) > 2 {
		return false
	}
	compressed := len(halves) == 2

	// Count 16-bit groups across both halves. A trailing dotted quad
	// occupies two groups.
	count := 0
	for hi, half := range halves {
		if half == "" {
			continue
		}
		groups := strings.Split(half, ":")
		for gi, g := range groups {
			if g == "" {
				// A bare leading or trailing colon outside of "::".
				return false
			}
			lastGroup := hi == len(halves)-1 && gi == len(groups)-1
			if lastGroup && strings.Contains(g, ".") {
				if !IsIPv4(g) {
					return false
				}
				count += 2
				continue
			}
			if !hexGroupRe.MatchString(g) {
				return false
			}
			count++
		}
	}
	if compressed {
		// "::" must stand in for at least one zero group.
		return count >= 1 && count <= 7
	}
	return count == 8
}
