package analytics

import (
	"context"

	"github.com/rs/zerolog"

	"tunelens/pkg/spotify"
)

// Credentials are the catalog API credentials for one request,
// resolved at request entry (payload override or configured default).
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Runner executes one aggregation per call, constructing and
// authenticating a fresh catalog client each time. Nothing is cached
// across calls: no tokens, no responses.
type Runner struct {
	newClient func(creds Credentials) (*spotify.Client, error)
	logger    zerolog.Logger
}

// NewRunner creates a Runner whose clients use the given market and
// search strategy.
func NewRunner(market, strategy string, logger zerolog.Logger) *Runner {
	return &Runner{
		newClient: func(creds Credentials) (*spotify.Client, error) {
			return spotify.NewClient(spotify.Config{
				ClientID:     creds.ClientID,
				ClientSecret: creds.ClientSecret,
				Market:       market,
				Strategy:     spotify.SearchStrategy(strategy),
				Logger:       debugLogger{logger},
			})
		},
		logger: logger,
	}
}

// Run authenticates a fresh client and executes the aggregation.
// Authentication failures wrap spotify.ErrAuthFailed.
func (r *Runner) Run(ctx context.Context, creds Credentials, artistName string) (*Report, error) {
	client, err := r.newClient(creds)
	if err != nil {
		return nil, err
	}

	if err := client.Authenticate(ctx); err != nil {
		return nil, err
	}

	return New(client, r.logger).Run(ctx, artistName)
}

// debugLogger adapts zerolog to the catalog client's Logger interface.
type debugLogger struct {
	logger zerolog.Logger
}

func (l debugLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}
