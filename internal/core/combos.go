package core

import "sort"

// BuildCombos pairs the cheapest outbound and return offers per carrier
// identity, then checks whether mixing carriers beats every single-carrier
// pairing. The result is sorted ascending by total price; equal totals keep
// their discovery order. Identities are visited in the carrier map's
// priority order so repeated runs over the same pools produce identical
// output.
func BuildCombos(outbound, ret []Offer, carriers CarrierMap) []Combo {
	combos := []Combo{}

	for _, identity := range carriers.identityOrder(outbound, ret) {
		out, okOut := cheapestForIdentity(outbound, identity, carriers)
		in, okIn := cheapestForIdentity(ret, identity, carriers)
		if !okOut || !okIn {
			continue
		}
		combos = append(combos, newCombo(identity, out, in, false))
	}

	if mixed, ok := mixedCombo(outbound, ret, combos, carriers); ok {
		combos = append(combos, mixed)
	}

	sort.SliceStable(combos, func(i, j int) bool {
		return combos[i].TotalPrice.LessThan(combos[j].TotalPrice)
	})
	return combos
}

// mixedCombo pairs the globally cheapest offers of each direction. It only
// yields a combo when the two identities differ and the pairing is strictly
// cheaper than every per-carrier combo built so far.
func mixedCombo(outbound, ret []Offer, combos []Combo, carriers CarrierMap) (Combo, bool) {
	out, okOut := cheapestOffer(outbound)
	in, okIn := cheapestOffer(ret)
	if !okOut || !okIn {
		return Combo{}, false
	}

	outID := carriers.IdentityOf(out.Airline)
	inID := carriers.IdentityOf(in.Airline)
	if outID == inID {
		return Combo{}, false
	}

	total := Round2(out.Price.Add(in.Price))
	for _, c := range combos {
		if !total.LessThan(c.TotalPrice) {
			return Combo{}, false
		}
	}

	c := newCombo(outID+" + "+inID, out, in, true)
	return c, true
}

func newCombo(label string, out, in Offer, mixed bool) Combo {
	return Combo{
		Carrier:           label,
		OutboundPrice:     out.Price,
		ReturnPrice:       in.Price,
		TotalPrice:        Round2(out.Price.Add(in.Price)),
		OutboundDeparture: out.Departure,
		ReturnDeparture:   in.Departure,
		OutboundStops:     out.Stops,
		ReturnStops:       in.Stops,
		Mixed:             mixed,
	}
}

// cheapestForIdentity scans a pool for the lowest-priced offer whose raw
// code maps to the given identity. First occurrence wins on equal prices.
func cheapestForIdentity(pool []Offer, identity string, carriers CarrierMap) (Offer, bool) {
	var best Offer
	found := false
	for _, o := range pool {
		if carriers.IdentityOf(o.Airline) != identity {
			continue
		}
		if !found || o.Price.LessThan(best.Price) {
			best = o
			found = true
		}
	}
	return best, found
}

func cheapestOffer(pool []Offer) (Offer, bool) {
	var best Offer
	found := false
	for _, o := range pool {
		if !found || o.Price.LessThan(best.Price) {
			best = o
			found = true
		}
	}
	return best, found
}
