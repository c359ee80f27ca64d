// Package location turns postal codes into a best-effort place and builds
// the permit search links shown next to an estimate.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/straye-as/estimate-api/internal/domain"
)

const (
	DefaultBaseURL = "https://api.zippopotam.us"
	DefaultTimeout = 5 * time.Second
)

// Resolver maps a postal code to a place. Lookup never fails: anything that
// goes wrong yields an empty guess.
type Resolver interface {
	Lookup(ctx context.Context, zip string) domain.LocationGuess
}

// ResolverFunc adapts a function to the Resolver interface
type ResolverFunc func(ctx context.Context, zip string) domain.LocationGuess

func (f ResolverFunc) Lookup(ctx context.Context, zip string) domain.LocationGuess {
	return f(ctx, zip)
}

// Config configures the Zippopotam lookup
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// ZippopotamResolver looks up US postal codes on api.zippopotam.us
type ZippopotamResolver struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewZippopotamResolver creates a resolver using cfg, filling in defaults
func NewZippopotamResolver(cfg Config, logger *zap.Logger) *ZippopotamResolver {
	return NewZippopotamResolverWithHTTPClient(cfg, &http.Client{}, logger)
}

// NewZippopotamResolverWithHTTPClient is intended for tests
func NewZippopotamResolverWithHTTPClient(cfg Config, httpClient *http.Client, logger *zap.Logger) *ZippopotamResolver {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ZippopotamResolver{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: httpClient,
		logger:     logger,
	}
}

type zippopotamResponse struct {
	Places []struct {
		PlaceName         string `json:"place name"`
		StateAbbreviation string `json:"state abbreviation"`
	} `json:"places"`
}

func (r *ZippopotamResolver) Lookup(ctx context.Context, zip string) domain.LocationGuess {
	zip = strings.TrimSpace(zip)
	if zip == "" {
		return domain.LocationGuess{}
	}

	guess, err := r.fetch(ctx, zip)
	if err != nil {
		r.logger.Debug("postal code lookup degraded to empty guess",
			zap.String("zip", zip),
			zap.Error(err),
		)
		return domain.LocationGuess{}
	}
	return guess
}

func (r *ZippopotamResolver) fetch(ctx context.Context, zip string) (domain.LocationGuess, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/us/"+url.PathEscape(zip), nil)
	if err != nil {
		return domain.LocationGuess{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return domain.LocationGuess{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return domain.LocationGuess{}, fmt.Errorf("lookup status %d", resp.StatusCode)
	}

	var body zippopotamResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.LocationGuess{}, fmt.Errorf("decode lookup: %w", err)
	}
	if len(body.Places) == 0 {
		return domain.LocationGuess{}, nil
	}

	return domain.LocationGuess{
		City:  body.Places[0].PlaceName,
		State: body.Places[0].StateAbbreviation,
	}, nil
}
