package target_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scopehq/netscope/internal/target"
)

func TestClassify_IPv4(t *testing.T) {
	for _, s := range []string{
		"8.8.8.8",
		"1.1.1.1",
		"255.255.255.255",
		"0.0.0.0",
		"010.1.1.1", // leading zeros are accepted by the grammar
	} {
		assert.Equal(t, target.IPv4, target.Classify(s), "input %q", s)
	}
}

func TestClassify_IPv6(t *testing.T) {
	for _, s := range []string{
		"::",
		"::1",
		"2001:db8::1",
		"2001:0db8:0000:0000:0000:0000:0000:0001",
		"fe80::",
		"::ffff:8.8.8.8",
		"64:ff9b::1.2.3.4",
		"0:0:0:0:0:ffff:1.2.3.4",
		"2001:DB8::1", // uppercase hex
	} {
		assert.Equal(t, target.IPv6, target.Classify(s), "input %q", s)
	}
}

func TestClassify_Domain(t *testing.T) {
	for _, s := range []string{
		"example.com",
		"sub.example.co.uk",
		"999.1.1.1",           // out-of-range octet falls through
		"1.2.3",               // too few groups
		"1.2.3.4.5",           // too many groups
		"not:a:real:address:zzzz",
		"2001:db8::1::2",      // two "::" compressions
		"2001:db8:::1",        // ":::" never valid
		"1:2:3:4:5:6:7:8:9",   // nine groups
		"1:2:3:4:5:6:7",       // seven groups, no compression
		"2001:db8::12345",     // group longer than 4 hex digits
		":",                   // bare colon
		"::ffff:999.1.2.3",    // embedded quad out of range
		"localhost",
	} {
		assert.Equal(t, target.Domain, target.Classify(s), "input %q", s)
	}
}

func TestClassify_CompressionCoversFullAddress(t *testing.T) {
	// "::" with all eight groups present on either side is not a valid compression.
	assert.Equal(t, target.Domain, target.Classify("1:2:3:4:5:6:7:8::"))
	assert.Equal(t, target.Domain, target.Classify("::1:2:3:4:5:6:7:8"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "ipv4", target.IPv4.String())
	assert.Equal(t, "ipv6", target.IPv6.String())
	assert.Equal(t, "domain", target.Domain.String())
}

func TestKindIsIP(t *testing.T) {
	assert.True(t, target.IPv4.IsIP())
	assert.True(t, target.IPv6.IsIP())
	assert.False(t, target.Domain.IsIP())
}
