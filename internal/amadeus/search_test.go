package amadeus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const offersPayload = `{
  "data": [
    {
      "itineraries": [
        {
          "segments": [
            {
              "departure": {"iataCode": "GRU", "at": "2026-09-04T20:15:00"},
              "arrival": {"iataCode": "SSA", "at": "2026-09-04T22:40:00"},
              "carrierCode": "G3"
            }
          ]
        }
      ],
      "price": {"currency": "BRL", "total": "485.00", "grandTotal": "512.30"},
      "validatingAirlineCodes": ["G3"]
    },
    {
      "itineraries": [
        {
          "segments": [
            {
              "departure": {"iataCode": "GRU", "at": "2026-09-04T06:00:00"},
              "arrival": {"iataCode": "BSB", "at": "2026-09-04T07:50:00"},
              "carrierCode": "AD",
              "operating": {"carrierCode": "2Z"}
            },
            {
              "departure": {"iataCode": "BSB", "at": "2026-09-04T09:10:00"},
              "arrival": {"iataCode": "SSA", "at": "2026-09-04T11:05:00"},
              "carrierCode": "AD"
            }
          ]
        }
      ],
      "price": {"currency": "BRL", "total": "399.90"},
      "validatingAirlineCodes": ["AD"]
    }
  ]
}`

func searchTestClient(url string, sleeps *[]time.Duration) *Client {
	c := &Client{
		PrimaryURL:   url,
		SecondaryURL: url,
		Currency:     "BRL",
		MaxResults:   50,
		Retries:      DefaultRetries,
		Log:          zap.NewNop(),
	}
	c.Sleep = func(d time.Duration) {
		if sleeps != nil {
			*sleeps = append(*sleeps, d)
		}
	}
	c.baseURL = url
	c.token = "tok"
	return c
}

func TestSearch_MapsProviderOffers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("unexpected authorization header %q", got)
		}
		q := r.URL.Query()
		if q.Get("originLocationCode") != "GRU" || q.Get("departureDate") != "2026-09-04" {
			t.Errorf("unexpected query %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(offersPayload))
	}))
	defer server.Close()

	c := searchTestClient(server.URL, nil)
	offers, err := c.Search(context.Background(), "GRU", "SSA", "2026-09-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(offers))
	}

	nonstop := offers[0]
	if !nonstop.Price.Equal(decimal.RequireFromString("512.30")) {
		t.Errorf("expected grand total 512.30 preferred, got %s", nonstop.Price)
	}
	if nonstop.Airline != "G3" || nonstop.Stops != 0 {
		t.Errorf("unexpected nonstop mapping: %+v", nonstop)
	}
	if nonstop.Departure != "2026-09-04T20:15:00" {
		t.Errorf("unexpected departure %s", nonstop.Departure)
	}

	connection := offers[1]
	if !connection.Price.Equal(decimal.RequireFromString("399.90")) {
		t.Errorf("expected fallback to total 399.90, got %s", connection.Price)
	}
	if connection.Airline != "2Z" {
		t.Errorf("expected operating carrier 2Z preferred, got %s", connection.Airline)
	}
	if connection.Stops != 1 {
		t.Errorf("expected 1 stop for two segments, got %d", connection.Stops)
	}
	if connection.Arrival != "2026-09-04T11:05:00" {
		t.Errorf("expected last segment arrival, got %s", connection.Arrival)
	}
}

func TestSearch_RateLimitBacksOffExponentially(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(offersPayload))
	}))
	defer server.Close()

	var sleeps []time.Duration
	c := searchTestClient(server.URL, &sleeps)
	offers, err := c.Search(context.Background(), "GRU", "SSA", "2026-09-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("expected offers after retries, got %d", len(offers))
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(sleeps) != len(want) || sleeps[0] != want[0] || sleeps[1] != want[1] {
		t.Errorf("expected backoff %v, got %v", want, sleeps)
	}
}

func TestSearch_ExhaustedBudgetReturnsEmpty(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var sleeps []time.Duration
	c := searchTestClient(server.URL, &sleeps)
	offers, err := c.Search(context.Background(), "GRU", "SSA", "2026-09-04")
	if err != nil {
		t.Fatalf("expected degraded search to stay error-free, got %v", err)
	}
	if len(offers) != 0 {
		t.Errorf("expected empty result, got %d offers", len(offers))
	}
	if attempts != DefaultRetries+1 {
		t.Errorf("expected %d attempts, got %d", DefaultRetries+1, attempts)
	}
	for i, d := range sleeps {
		if d != 2*time.Second {
			t.Errorf("expected fixed 2s delay at index %d, got %v", i, d)
		}
	}
}

func TestSearch_TransportFailureRetriesThenEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // every request now fails at the transport level

	c := searchTestClient(server.URL, nil)
	offers, err := c.Search(context.Background(), "GRU", "SSA", "2026-09-04")
	if err != nil {
		t.Fatalf("expected no error for transport failures, got %v", err)
	}
	if len(offers) != 0 {
		t.Errorf("expected empty result, got %d offers", len(offers))
	}
}

func TestSearch_SkipsOffersWithUnparseablePrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"itineraries":[],"price":{"grandTotal":"not-a-number"}}]}`))
	}))
	defer server.Close()

	c := searchTestClient(server.URL, nil)
	offers, err := c.Search(context.Background(), "GRU", "SSA", "2026-09-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 0 {
		t.Errorf("expected malformed offer to be skipped, got %d", len(offers))
	}
}
