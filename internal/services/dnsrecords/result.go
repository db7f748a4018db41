package dnsrecords

import "github.com/scopehq/netscope/internal/doh"

// Result holds the aggregated DNS lookup mapping for a single target.
// Records is keyed by record-type mnemonic ("A", "PTR", ...) and contains a
// key for every configured type, empty when the type was inapplicable,
// unresolvable, or its lookup failed.
type Result struct {
	Input   string                  `json:"input"`
	Kind    string                  `json:"kind"`
	Records map[string][]doh.Answer `json:"records"`
}

// IsEmpty reports whether no record type produced any answers.
func (r *Result) IsEmpty() bool {
	for _, answers := range r.Records {
		if len(answers) > 0 {
			return false
		}
	}
	return true
}
