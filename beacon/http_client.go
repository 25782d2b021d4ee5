package beacon

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ardents-project/tlock/errs"
	"github.com/ardents-project/tlock/internal/ratelimit"
)

// HTTPClient is the reference Client implementation: it speaks the
// drand-style HTTP API (GET /info, GET /public/{round}) over a plain
// net/http.Client, rate-limited per endpoint so a caller retrying a
// TooEarly decrypt in a loop cannot hammer the network.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	limiter *ratelimit.Limiter
}

// NewHTTPClient builds a client against baseURL (no trailing slash).
// limiter may be nil, in which case requests are unthrottled.
func NewHTTPClient(baseURL string, timeout time.Duration, limiter *ratelimit.Limiter) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

type chainInfoWire struct {
	SchemeID  string `json:"schemeID"`
	Period    uint64 `json:"period"`
	Genesis   int64  `json:"genesis_time"`
	Hash      string `json:"hash"`
	PublicKey string `json:"public_key"`
}

type beaconWire struct {
	Round     uint64 `json:"round"`
	Signature string `json:"signature"`
}

// ChainInfo fetches chain metadata from GET /info.
func (c *HTTPClient) ChainInfo(ctx context.Context) (ChainInfo, error) {
	if !c.limiter.AllowChainInfo(time.Now()) {
		rateLimited.WithLabelValues("info").Inc()
		return ChainInfo{}, errs.New(errs.Network, fmt.Errorf("beacon: rate limited fetching chain info"))
	}

	var wire chainInfoWire
	if err := c.getJSON(ctx, "/info", "info", &wire); err != nil {
		return ChainInfo{}, err
	}

	pk, err := hex.DecodeString(wire.PublicKey)
	if err != nil {
		return ChainInfo{}, errs.New(errs.Network, fmt.Errorf("beacon: decode public key hex: %w", err))
	}

	return ChainInfo{
		SchemeID:        wire.SchemeID,
		PeriodSeconds:   wire.Period,
		GenesisTimeUnix: wire.Genesis,
		ChainHash:       strings.ToLower(wire.Hash),
		PublicKey:       pk,
	}, nil
}

// FetchBeacon fetches the (round, signature) pair from GET
// /public/{round}.
func (c *HTTPClient) FetchBeacon(ctx context.Context, round uint64) (Beacon, error) {
	if !c.limiter.AllowBeacon(time.Now()) {
		rateLimited.WithLabelValues("public").Inc()
		return Beacon{}, errs.New(errs.Network, fmt.Errorf("beacon: rate limited fetching round %d", round))
	}

	var wire beaconWire
	if err := c.getJSON(ctx, fmt.Sprintf("/public/%d", round), "public", &wire); err != nil {
		return Beacon{}, err
	}

	sig, err := hex.DecodeString(wire.Signature)
	if err != nil {
		return Beacon{}, errs.New(errs.Network, fmt.Errorf("beacon: decode signature hex: %w", err))
	}
	return Beacon{Round: wire.Round, Signature: sig}, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path, op string, dst any) error {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		fetchTotal.WithLabelValues(op, "error").Inc()
		return errs.New(errs.Network, fmt.Errorf("beacon: build request: %w", err))
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		fetchTotal.WithLabelValues(op, "error").Inc()
		fetchLatency.WithLabelValues(op, "error").Observe(time.Since(start).Seconds())
		return errs.New(errs.Network, fmt.Errorf("beacon: request %s: %w", path, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		fetchTotal.WithLabelValues(op, "error").Inc()
		fetchLatency.WithLabelValues(op, "error").Observe(time.Since(start).Seconds())
		return errs.New(errs.Network, fmt.Errorf("beacon: %s returned status %d: %s", path, resp.StatusCode, body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		fetchTotal.WithLabelValues(op, "error").Inc()
		fetchLatency.WithLabelValues(op, "error").Observe(time.Since(start).Seconds())
		return errs.New(errs.Network, fmt.Errorf("beacon: decode %s response: %w", path, err))
	}

	fetchTotal.WithLabelValues(op, "ok").Inc()
	fetchLatency.WithLabelValues(op, "ok").Observe(time.Since(start).Seconds())
	return nil
}
