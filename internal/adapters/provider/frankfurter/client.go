package frankfurter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/fx_rate_service/internal/apperrors"
	"github.com/SscSPs/fx_rate_service/internal/core/domain"
	"github.com/SscSPs/fx_rate_service/internal/core/ports"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public Frankfurter API.
const DefaultBaseURL = "https://api.frankfurter.app"

const latestPath = "/latest"

// maxBodyBytes bounds how much of a provider response is read.
const maxBodyBytes = 1 << 20

// Client fetches reference rates from a Frankfurter-compatible API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.RateProvider = (*Client)(nil)

// NewClient creates a Frankfurter client. A zero timeout falls back to 10 seconds.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "frankfurter"),
	}
}

// latestResponse mirrors the /latest payload. Numbers stay json.Number so no float64 conversion happens.
type latestResponse struct {
	Amount json.Number            `json:"amount"`
	Base   string                 `json:"base"`
	Date   string                 `json:"date"`
	Rates  map[string]json.Number `json:"rates"`
}

// FetchLatestRates retrieves the latest rate table quoted from base.
func (c *Client) FetchLatestRates(ctx context.Context, base string) (*domain.RateSnapshot, error) {
	reqURL := fmt.Sprintf("%s%s?from=%s", c.baseURL, latestPath, url.QueryEscape(strings.ToUpper(base)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewProviderError("build request", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewProviderError("request latest rates", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close provider response body", slog.String("error", closeErr.Error()))
		}
	}()

	c.logger.Debug("Provider responded",
		slog.String("url", reqURL),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	body := io.LimitReader(resp.Body, maxBodyBytes)
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(body, 512))
		return nil, apperrors.NewProviderError("request latest rates",
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))))
	}

	var payload latestResponse
	decoder := json.NewDecoder(body)
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return nil, apperrors.NewProviderError("decode latest rates", err)
	}

	return toSnapshot(base, payload)
}

func toSnapshot(requestedBase string, payload latestResponse) (*domain.RateSnapshot, error) {
	if payload.Rates == nil {
		return nil, apperrors.NewProviderError("parse latest rates", fmt.Errorf("response has no rates"))
	}

	date, err := time.Parse(domain.DateLayout, payload.Date)
	if err != nil {
		return nil, apperrors.NewProviderError("parse latest rates", fmt.Errorf("invalid date %q: %w", payload.Date, err))
	}

	base := strings.ToUpper(payload.Base)
	if base == "" {
		base = strings.ToUpper(requestedBase)
	}

	rates := make(map[string]decimal.Decimal, len(payload.Rates))
	for code, raw := range payload.Rates {
		target := domain.NormalizeCurrencyCode(code)
		if !target.Valid() {
			return nil, apperrors.NewProviderError("parse latest rates", fmt.Errorf("invalid currency code %q", code))
		}
		value, err := decimal.NewFromString(raw.String())
		if err != nil {
			return nil, apperrors.NewProviderError("parse latest rates", fmt.Errorf("invalid rate for %s: %w", target, err))
		}
		if !value.IsPositive() {
			return nil, apperrors.NewProviderError("parse latest rates", fmt.Errorf("non-positive rate for %s: %s", target, value))
		}
		rates[target.String()] = value
	}

	return &domain.RateSnapshot{
		Base:  base,
		Date:  date,
		Rates: rates,
	}, nil
}
