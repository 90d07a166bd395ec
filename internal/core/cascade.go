package core

import "sort"

// lastResortCap is how many of the cheapest raw offers survive when every
// time-based stage comes up empty.
const lastResortCap = 10

// Reduce shrinks a raw offer pool to the candidate set handed to the combo
// builder. Stages relax in strict order, each one tried only when the
// previous produced nothing:
//
//  1. keep nonstop offers; if there are none, keep the whole raw pool
//  2. keep offers departing at or after minHour
//  3. retry with minHour-2
//  4. fall back to the ten cheapest raw offers, ignoring time entirely
//
// An empty raw pool reduces to nil. Later stages never see offers that were
// not already in the raw input.
func Reduce(raw []Offer, minHour int) []Offer {
	if len(raw) == 0 {
		return nil
	}

	pool := filterNonstop(raw)
	if len(pool) == 0 {
		pool = raw
	}

	if strict := filterMinHour(pool, minHour); len(strict) > 0 {
		return strict
	}
	if relaxed := filterMinHour(pool, minHour-2); len(relaxed) > 0 {
		return relaxed
	}

	return cheapest(raw, lastResortCap)
}

func filterNonstop(offers []Offer) []Offer {
	var out []Offer
	for _, o := range offers {
		if o.Stops == 0 {
			out = append(out, o)
		}
	}
	return out
}

func filterMinHour(offers []Offer, minHour int) []Offer {
	var out []Offer
	for _, o := range offers {
		if h := o.DepartureHour(); h >= 0 && h >= minHour {
			out = append(out, o)
		}
	}
	return out
}

// cheapest returns up to n offers sorted ascending by price, preserving
// input order on equal prices.
func cheapest(offers []Offer, n int) []Offer {
	sorted := append([]Offer(nil), offers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price.LessThan(sorted[j].Price)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
