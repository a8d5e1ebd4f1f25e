// Package fxclient fetches exchange rates from a remote provider authenticated with the OAuth2
// client-credentials grant.
package fxclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Config describes the provider endpoint and its credentials.
type Config struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	// HTTPClient is used for both the token and the rate requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Client implements services.RateProvider.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ portssvc.RateProvider = (*Client)(nil)

// rateResponse is the provider's payload for a single pair.
type rateResponse struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Date string          `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}

// New builds a client whose requests carry a token obtained and refreshed by oauth2.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.BaseURL == "" || cfg.TokenURL == "" {
		return nil, fmt.Errorf("fx provider: base URL and token URL are required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("fx provider: invalid base URL: %w", err)
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
	}
	if cfg.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, cfg.HTTPClient)
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    cc.Client(ctx),
	}, nil
}

// FetchRate asks the provider for the rate of one unit of from in to, effective on the date.
func (c *Client) FetchRate(ctx context.Context, from, to string, on time.Time, rateType domain.RateType) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("from", strings.ToUpper(from))
	q.Set("to", strings.ToUpper(to))
	q.Set("date", on.UTC().Format(time.DateOnly))
	q.Set("type", string(rateType))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rates?"+q.Encode(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fx provider: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fx provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return decimal.Zero, fmt.Errorf("fx provider: %s/%s returned %d: %s", from, to, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("fx provider: decoding %s/%s: %w", from, to, err)
	}
	if !payload.Rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("fx provider: %s/%s returned non-positive rate %s", from, to, payload.Rate)
	}
	return payload.Rate, nil
}
