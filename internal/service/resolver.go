package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// Quote is the raw result of resolving one symbol's price. PricePerShare is
// kept exactly as received; whether it parses as a number is the valuation
// engine's decision, not the transport's.
type Quote struct {
	PricePerShare string
}

// PriceResolver looks up the current per-share price for a symbol.
type PriceResolver interface {
	Resolve(ctx context.Context, symbol string) (Quote, error)
}

// QuoteClient resolves prices from an external quote endpoint speaking
// GET {base}/quote?symbol=SYM -> {"pricePerShare": <string or number>}.
type QuoteClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewQuoteClient(baseURL string, client *http.Client, log *logrus.Logger) *QuoteClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &QuoteClient{baseURL: strings.TrimRight(baseURL, "/"), client: client, log: log}
}

type quoteResponse struct {
	PricePerShare json.RawMessage `json:"pricePerShare"`
}

func (q *QuoteClient) Resolve(ctx context.Context, symbol string) (Quote, error) {
	u := fmt.Sprintf("%s/quote?%s", q.baseURL, url.Values{"symbol": {symbol}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Quote{}, err
	}
	res, err := q.client.Do(req)
	if err != nil {
		return Quote{}, &FetchError{Target: u, Err: err}
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			q.log.Warnf("close quote response body: %v", err)
		}
	}()

	if res.StatusCode >= 400 {
		return Quote{}, &FetchError{Target: u, Err: fmt.Errorf("http %d", res.StatusCode)}
	}

	var body quoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return Quote{}, &MalformedResponseError{Target: u, Err: err}
	}

	// Unknown symbols come back with a null or non-numeric price. Pass the
	// raw text through rather than failing the line item here.
	raw := strings.Trim(string(body.PricePerShare), `"`)
	if raw == "null" {
		raw = ""
	}
	return Quote{PricePerShare: raw}, nil
}
