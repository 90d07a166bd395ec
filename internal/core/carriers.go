package core

import "sort"

// CarrierMap resolves raw carrier codes to display identities. The mapping
// is many-to-one: codeshare variants collapse into one commercial brand.
// Unknown codes map to themselves. The map is immutable after construction
// and passed explicitly to whoever needs it.
type CarrierMap struct {
	names    map[string]string
	priority []string
}

// NewCarrierMap builds a CarrierMap from a raw-code to display-name table and
// an explicit priority list of raw codes. The priority list fixes the order
// identities are considered when building combos, so tie-breaking stays
// reproducible across runs.
func NewCarrierMap(names map[string]string, priority []string) CarrierMap {
	copied := make(map[string]string, len(names))
	for code, name := range names {
		copied[code] = name
	}
	return CarrierMap{names: copied, priority: append([]string(nil), priority...)}
}

// IdentityOf returns the display identity for a raw carrier code.
func (m CarrierMap) IdentityOf(code string) string {
	if name, ok := m.names[code]; ok {
		return name
	}
	return code
}

// Priority returns the configured raw-code priority order.
func (m CarrierMap) Priority() []string {
	return append([]string(nil), m.priority...)
}

// identityOrder returns the distinct identities present in the given pools,
// priority-listed codes first, then any remaining codes in lexical order.
func (m CarrierMap) identityOrder(pools ...[]Offer) []string {
	seen := make(map[string]bool)
	var order []string
	add := func(code string) {
		id := m.IdentityOf(code)
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}

	present := make(map[string]bool)
	for _, pool := range pools {
		for _, o := range pool {
			present[o.Airline] = true
		}
	}

	for _, code := range m.priority {
		if present[code] {
			add(code)
		}
	}

	var rest []string
	for code := range present {
		rest = append(rest, code)
	}
	sort.Strings(rest)
	for _, code := range rest {
		add(code)
	}

	return order
}
