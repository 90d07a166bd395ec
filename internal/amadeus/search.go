package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/farewatch/fares-cli/internal/core"
)

const (
	// DefaultRetries is the retry budget after the first attempt.
	DefaultRetries = 2

	retryDelay = 2 * time.Second
)

// Client talks to the fare provider. Authenticate must succeed before Search
// is called; it pins the environment and bearer token for the rest of the
// run.
type Client struct {
	HTTP         *http.Client
	PrimaryURL   string
	SecondaryURL string
	Currency     string
	MaxResults   int
	Retries      int
	Log          *zap.Logger

	// Sleep is swapped out in tests to observe backoff without waiting.
	Sleep func(time.Duration)

	baseURL string
	token   string
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}

// Search fetches offers for one direction on one date. Provider failures are
// retried within the budget; an exhausted budget yields an empty slice, not
// an error. Rate limiting backs off exponentially, other failures wait a
// fixed delay.
func (c *Client) Search(ctx context.Context, origin, destination, date string) ([]core.Offer, error) {
	attempts := c.Retries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		offers, err := c.searchOnce(ctx, origin, destination, date)
		if err == nil {
			return offers, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.Log.Warn("search attempt failed",
			zap.String("origin", origin),
			zap.String("destination", destination),
			zap.String("date", date),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
		if attempt < attempts-1 {
			delay := retryDelay
			if errors.Is(err, errRateLimited) {
				// 2, 4, 8... seconds per further attempt.
				delay = time.Duration(1<<(attempt+1)) * time.Second
			}
			c.sleep(delay)
		}
	}
	return nil, nil
}

func (c *Client) searchOnce(ctx context.Context, origin, destination, date string) ([]core.Offer, error) {
	q := url.Values{
		"originLocationCode":      {origin},
		"destinationLocationCode": {destination},
		"departureDate":           {date},
		"adults":                  {"1"},
		"currencyCode":            {c.Currency},
		"max":                     {fmt.Sprint(c.MaxResults)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/shopping/flight-offers?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return mapOffers(parsed.Data), nil
}

var errRateLimited = errors.New("rate limited")

func mapOffers(data []offerJSON) []core.Offer {
	var offers []core.Offer
	for _, o := range data {
		offer, ok := mapOffer(o)
		if !ok {
			continue
		}
		offers = append(offers, offer)
	}
	return offers
}

// mapOffer flattens one provider offer into the pipeline's Offer shape.
// Price prefers the grand total over the simple total; the carrier prefers
// the operating carrier, then marketing, then validating, then the unknown
// sentinel.
func mapOffer(o offerJSON) (core.Offer, bool) {
	raw := o.Price.GrandTotal
	if raw == "" {
		raw = o.Price.Total
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return core.Offer{}, false
	}

	offer := core.Offer{Price: price, Airline: core.UnknownCarrier}
	if len(o.ValidatingAirlineCodes) > 0 {
		offer.Airline = o.ValidatingAirlineCodes[0]
	}

	if len(o.Itineraries) > 0 {
		segments := o.Itineraries[0].Segments
		if n := len(segments); n > 0 {
			first, last := segments[0], segments[n-1]
			offer.Departure = first.Departure.At
			offer.Arrival = last.Arrival.At
			offer.Stops = n - 1
			if first.Operating != nil && first.Operating.CarrierCode != "" {
				offer.Airline = first.Operating.CarrierCode
			} else if first.CarrierCode != "" {
				offer.Airline = first.CarrierCode
			}
		}
	}

	return offer, true
}
