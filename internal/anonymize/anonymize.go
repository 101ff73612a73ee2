// Package anonymize replaces player names with stable fake aliases.
//
// Aliases are derived from a keyed FNV-1a hash of the lowercased real
// name, so the same key and name always map to the same alias while
// different keys produce unrelated mappings. Collisions are resolved
// with numeric suffixes in the order names are first seen.
package anonymize

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Anonymizer maps real names to aliases. It is not safe for concurrent
// use; callers hold one per pass over a file.
type Anonymizer struct {
	key       string
	overrides map[string]string
	generated map[string]string
	used      map[string]bool
}

// New builds an anonymizer around a secret key. Overrides pin specific
// real names (matched case-insensitively) to fixed aliases and take
// precedence over hashing. Override aliases are reserved up front so a
// generated name never duplicates one.
func New(key string, overrides map[string]string) (*Anonymizer, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("anonymization key is required")
	}
	a := &Anonymizer{
		key:       key,
		overrides: make(map[string]string, len(overrides)),
		generated: make(map[string]string),
		used:      make(map[string]bool, len(overrides)),
	}
	for real, alias := range overrides {
		real = strings.ToLower(strings.TrimSpace(real))
		alias = strings.TrimSpace(alias)
		if real == "" || alias == "" {
			continue
		}
		a.overrides[real] = alias
		a.used[alias] = true
	}
	return a, nil
}

// ParseOverrides parses a comma-separated list of real=Alias pairs,
// e.g. "bbo_user1=Alice_Smith,bbo_user2=Bob_Jones". Empty entries are
// skipped.
func ParseOverrides(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		real, alias, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("malformed name mapping %q, want real=Alias", pair)
		}
		out[strings.TrimSpace(real)] = strings.TrimSpace(alias)
	}
	return out, nil
}

// Alias returns the anonymous name for a player, generating and caching
// one on first sight.
func (a *Anonymizer) Alias(name string) string {
	lower := strings.ToLower(name)
	if alias, ok := a.overrides[lower]; ok {
		return alias
	}
	if alias, ok := a.generated[lower]; ok {
		return alias
	}
	alias := a.generate(lower)
	a.generated[lower] = alias
	return alias
}

func (a *Anonymizer) generate(lower string) string {
	h := fnv.New64a()
	h.Write([]byte(a.key + ":" + lower))
	sum := h.Sum64()

	first := firstNames[sum%uint64(len(firstNames))]
	surname := surnames[(sum/uint64(len(firstNames)))%uint64(len(surnames))]
	base := first + "_" + surname

	candidate := base
	for suffix := 2; a.used[candidate]; suffix++ {
		candidate = fmt.Sprintf("%s_%d", base, suffix)
	}
	a.used[candidate] = true
	return candidate
}
