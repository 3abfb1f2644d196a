package classifier

import "strings"

// Config holds the classification lists. Keys are lower-case "section.method" prefixes;
// underscores are ignored when matching so "transfer_keep_alive" and "transferKeepAlive" agree.
type Config struct {
	Allow           []string
	Deny            []string
	ShieldedMarkers []string
}

// DefaultConfig returns the built-in lists. Flag values are appended to them.
func DefaultConfig() Config {
	return Config{
		Allow: []string{
			"balances.transfer",
			"assets.transfer",
			"midnight.sendmntransaction",
			"midnight.sendtransaction",
			"contracts.call",
			"contracts.deploy",
		},
		Deny: []string{
			"timestamp.set",
			"system.remark",
			"parachainsystem.",
			"authorship.",
			"sessioncommitteemanagement.",
		},
		ShieldedMarkers: []string{"shielded", "private", "zswap"},
	}
}

func canonicalKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "")
}

func hasAnyPrefix(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(key, canonicalKey(p)) {
			return true
		}
	}
	return false
}

func containsAny(s string, markers []string) bool {
	s = strings.ToLower(s)
	for _, m := range markers {
		if m != "" && strings.Contains(s, strings.ToLower(m)) {
			return true
		}
	}
	return false
}
