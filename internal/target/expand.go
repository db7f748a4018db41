package target

import (
	"fmt"
	"strconv"
	"strings"
)

// Expansions used often enough to special-case.
const (
	zeroAddressExpanded = "0000:0000:0000:0000:0000:0000:0000:0000"
	loopbackExpanded    = "0000:0000:0000:0000:0000:0000:0000:0001"
)

// ExpandIPv6 returns the fully expanded canonical form of a syntactically
// valid IPv6 address: exactly 8 groups of exactly 4 lowercase hex digits.
// Compressed input has its "::" spliced with the implied number of zero
// groups; an IPv4-embedded tail is converted to two hex groups. The function
// is idempotent on already-expanded input.
func ExpandIPv6(s string) string {
	switch s {
	case "::":
		return zeroAddressExpanded
	case "::1":
		return loopbackExpanded
	}

	var groups []string
	if left, right, ok := strings.Cut(s, "::"); ok {
		leftGroups := splitGroups(left)
		rightGroups := splitGroups(right)
		zeros := 8 - len(leftGroups) - len(rightGroups)
		groups = append(groups, leftGroups...)
		for range zeros {
			groups = append(groups, "0")
		}
		groups = append(groups, rightGroups...)
	} else {
		groups = splitGroups(s)
	}

	for i, g := range groups {
		groups[i] = strings.Repeat("0", 4-len(g)) + strings.ToLower(g)
	}
	return strings.Join(groups, ":")
}

// splitGroups splits a (half of an) IPv6 address into 16-bit groups,
// converting a trailing dotted-quad tail into its two hex groups.
func splitGroups(s string) []string {
	if s == "" {
		return nil
	}
	groups := strings.Split(s, ":")
	last := groups[len(groups)-1]
	if strings.Contains(last, ".") {
		octets := strings.Split(last, ".")
		var vals [4]int
		for i, o := range octets {
			vals[i], _ = strconv.Atoi(o)
		}
		groups = groups[:len(groups)-1]
		groups = append(groups,
			fmt.Sprintf("%02x%02x", vals[0], vals[1]),
			fmt.Sprintf("%02x%02x", vals[2], vals[3]),
		)
	}
	return groups
}
