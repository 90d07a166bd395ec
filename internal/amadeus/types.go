package amadeus

// Wire types for the two provider endpoints we consume: the client-credentials
// token exchange and the flight-offers search. Only the fields the pipeline
// reads are declared.

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type searchResponse struct {
	Data []offerJSON `json:"data"`
}

type offerJSON struct {
	Itineraries            []itineraryJSON `json:"itineraries"`
	Price                  priceJSON       `json:"price"`
	ValidatingAirlineCodes []string        `json:"validatingAirlineCodes"`
}

type itineraryJSON struct {
	Segments []segmentJSON `json:"segments"`
}

type segmentJSON struct {
	Departure endpointJSON `json:"departure"`
	Arrival   endpointJSON `json:"arrival"`
	// CarrierCode is the marketing carrier; Operating, when present, names
	// who actually flies the segment.
	CarrierCode string         `json:"carrierCode"`
	Operating   *operatingJSON `json:"operating"`
}

type endpointJSON struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

type operatingJSON struct {
	CarrierCode string `json:"carrierCode"`
}

type priceJSON struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	GrandTotal string `json:"grandTotal"`
}
