// Package spotify provides a client for the Spotify Web API.
//
// This package implements the client-credentials flow and the small set
// of catalog read operations (search, artists, albums, tracks, browse)
// used by tunelens. It is designed to be used as a standalone SDK.
//
// Example usage:
//
//	import "tunelens/pkg/spotify"
//
//	client, err := spotify.NewClient(spotify.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := client.Authenticate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	artist, err := client.SearchArtist(ctx, "Mt Joy")
package spotify

import (
	"net/http"
)

// SearchStrategy selects how SearchArtist resolves a name to an artist.
type SearchStrategy string

const (
	// StrategyExact takes the single top search result, unranked.
	StrategyExact SearchStrategy = "exact"

	// StrategyRanked fetches several candidates, prefers a
	// case-insensitive exact name match, and otherwise falls back to
	// the highest-popularity candidate.
	StrategyRanked SearchStrategy = "ranked"
)

// Config holds client configuration.
type Config struct {
	ClientID     string         // Required: Spotify application client ID
	ClientSecret string         // Required: Spotify application client secret
	Market       string         // Optional: default market for track/album lookups (defaults to "US")
	Strategy     SearchStrategy // Optional: artist search strategy (defaults to StrategyRanked)
	HTTPClient   *http.Client   // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL      string         // Optional: Base URL for the catalog API (used for testing)
	TokenURL     string         // Optional: Token endpoint URL (used for testing)
	Logger       Logger         // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Spotify catalog operations.
//
// A Client is intended to live for a single request or command
// invocation: Authenticate once, then issue data calls. The access
// token is held in memory and never refreshed.
type Client struct {
	clientID     string
	clientSecret string
	market       string
	strategy     SearchStrategy
	httpClient   *http.Client
	baseURL      string
	tokenURL     string
	logger       Logger

	accessToken string
}

const (
	// DefaultBaseURL is the Spotify Web API endpoint.
	DefaultBaseURL = "https://api.spotify.com/v1"

	// DefaultTokenURL is the Spotify accounts token endpoint.
	DefaultTokenURL = "https://accounts.spotify.com/api/token"

	// DefaultMarket is the market used when none is configured.
	DefaultMarket = "US"
)

// NewClient creates a new Spotify API client.
//
// Returns an error if required configuration (ClientID, ClientSecret)
// is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrInvalidConfig
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	market := cfg.Market
	if market == "" {
		market = DefaultMarket
	}

	strategy := cfg.Strategy
	if strategy == "" {
		strategy = StrategyRanked
	}

	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		market:       market,
		strategy:     strategy,
		httpClient:   httpClient,
		baseURL:      baseURL,
		tokenURL:     tokenURL,
		logger:       cfg.Logger,
	}, nil
}

// Authenticated reports whether Authenticate has succeeded.
func (c *Client) Authenticated() bool {
	return c.accessToken != ""
}

// Market returns the configured default market.
func (c *Client) Market() string {
	return c.market
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
