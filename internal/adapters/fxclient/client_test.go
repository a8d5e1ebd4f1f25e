package fxclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/adapters/fxclient"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type providerStub struct {
	tokenCalls atomic.Int32
	lastQuery  atomic.Value
	status     int
	body       string
}

func (p *providerStub) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		p.tokenCalls.Add(1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/rates", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		p.lastQuery.Store(r.URL.Query().Encode())
		w.WriteHeader(p.status)
		_, _ = w.Write([]byte(p.body))
	})
	return mux
}

func newClient(t *testing.T, p *providerStub) *fxclient.Client {
	srv := httptest.NewServer(p.handler(t))
	t.Cleanup(srv.Close)

	c, err := fxclient.New(context.Background(), fxclient.Config{
		BaseURL:      srv.URL + "/",
		TokenURL:     srv.URL + "/oauth/token",
		ClientID:     "ledger",
		ClientSecret: "secret",
		HTTPClient:   srv.Client(),
	})
	require.NoError(t, err)
	return c
}

func TestFetchRate(t *testing.T) {
	p := &providerStub{status: http.StatusOK, body: `{"from":"EUR","to":"AED","date":"2024-04-10","rate":"4.1"}`}
	c := newClient(t, p)
	on := time.Date(2024, 4, 10, 15, 0, 0, 0, time.UTC)

	rate, err := c.FetchRate(context.Background(), "eur", "aed", on, domain.RateSpot)
	require.NoError(t, err)
	assert.Equal(t, "4.1", rate.String())

	_, err = c.FetchRate(context.Background(), "EUR", "AED", on, domain.RateSpot)
	require.NoError(t, err)

	assert.Equal(t, int32(1), p.tokenCalls.Load(), "token is reused until it expires")
	assert.Equal(t, "date=2024-04-10&from=EUR&to=AED&type=SPOT", p.lastQuery.Load())
}

func TestFetchRate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"upstream failure", http.StatusBadGateway, "bad gateway"},
		{"not json", http.StatusOK, "<html>"},
		{"zero rate", http.StatusOK, `{"rate":"0"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, &providerStub{status: tt.status, body: tt.body})

			_, err := c.FetchRate(context.Background(), "USD", "AED", time.Now(), domain.RateSpot)
			assert.Error(t, err)
		})
	}
}

func TestNew_RequiresURLs(t *testing.T) {
	_, err := fxclient.New(context.Background(), fxclient.Config{BaseURL: "http://fx.local"})
	assert.Error(t, err)
}
