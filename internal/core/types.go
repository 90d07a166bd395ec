package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownCarrier is the sentinel raw code used when a provider offer carries
// no usable carrier information.
const UnknownCarrier = "??"

// Offer is a single priced flight option for one direction on one date.
// Departure and Arrival keep the provider's local ISO-8601 timestamps and
// may be empty when the provider omits them.
type Offer struct {
	Price     decimal.Decimal `json:"price"`
	Airline   string          `json:"airline"`
	Departure string          `json:"departure,omitempty"`
	Arrival   string          `json:"arrival,omitempty"`
	Stops     int             `json:"stops"`
}

// DepartureHour returns the local hour of the departure timestamp, or -1
// when the timestamp is absent or unparseable.
func (o Offer) DepartureHour() int {
	if o.Departure == "" {
		return -1
	}
	t, err := time.Parse("2006-01-02T15:04:05", o.Departure)
	if err != nil {
		return -1
	}
	return t.Hour()
}

// Combo is a priced round-trip pairing of one outbound and one return offer,
// attributed to a single carrier identity or to a synthetic mixed identity.
type Combo struct {
	Carrier           string          `json:"carrier"`
	OutboundPrice     decimal.Decimal `json:"outboundPrice"`
	ReturnPrice       decimal.Decimal `json:"returnPrice"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	OutboundDeparture string          `json:"outboundDeparture,omitempty"`
	ReturnDeparture   string          `json:"returnDeparture,omitempty"`
	OutboundStops     int             `json:"outboundStops"`
	ReturnStops       int             `json:"returnStops"`
	Mixed             bool            `json:"isMixed"`
}

// WeekRecord aggregates the combos found for one target week, sorted
// ascending by total price with discovery order preserved on ties.
type WeekRecord struct {
	OutboundDate string    `json:"outboundDate"`
	ReturnDate   string    `json:"returnDate"`
	GeneratedAt  time.Time `json:"generatedAt"`
	Combos       []Combo   `json:"combos"`
}

// Route echoes the searched route back into the report.
type Route struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Currency    string `json:"currency"`
}

// Report is the artifact produced by a full scan run. It fully replaces any
// previous artifact; there is no incremental merge.
type Report struct {
	RunID           string       `json:"runId"`
	GeneratedAt     time.Time    `json:"generatedAt"`
	DataSource      string       `json:"dataSource"`
	SyntheticPrices bool         `json:"syntheticPrices"`
	Route           Route        `json:"route"`
	Weeks           []WeekRecord `json:"weeks"`
	EmptyWeeks      int          `json:"emptyWeeks"`
	DegradedFetches int          `json:"degradedFetches"`
}

// Round2 rounds a price to two decimal places, half up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
