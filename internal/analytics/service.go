// Package analytics orchestrates one artist-analytics request: resolve
// the artist, gather their top tracks and latest album, sample popular
// artists from the new-releases listing, and shape the combined result.
//
// All computation of interest happens in the catalog API; this package
// only sequences calls and shapes responses. Everything it constructs
// is scoped to a single Run call.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"tunelens/pkg/spotify"
)

// Checkpoint errors that short-circuit a run with a specific message.
var (
	ErrArtistNotFound = errors.New("artist not found")
	ErrNoAlbums       = errors.New("no albums found")
)

const (
	topTrackLimit       = 5
	albumTrackLimit     = 5
	newReleaseLimit     = 20
	popularArtistLimit  = 10
	randomTopTrackLimit = 3
	latestAlbumGroups   = "album"
)

// Catalog captures the catalog-client operations the aggregation needs.
// *spotify.Client satisfies it.
type Catalog interface {
	SearchArtist(ctx context.Context, name string) (*spotify.Artist, error)
	GetArtist(ctx context.Context, id string) (*spotify.Artist, error)
	GetArtistTopTracks(ctx context.Context, id, market string) ([]spotify.Track, error)
	GetArtistAlbums(ctx context.Context, id, includeGroups, market string, limit int) ([]spotify.Album, error)
	GetAlbumTracks(ctx context.Context, id string, limit int) ([]spotify.Track, error)
	GetNewReleases(ctx context.Context, limit int) ([]spotify.NewRelease, error)
}

// Service runs the aggregation sequence against a catalog.
type Service struct {
	catalog Catalog
	pick    func(n int) int
	logger  zerolog.Logger
}

// New creates a Service over the given catalog. The random-artist pick
// defaults to a uniform choice.
func New(catalog Catalog, logger zerolog.Logger) *Service {
	return &Service{
		catalog: catalog,
		pick:    rand.Intn,
		logger:  logger.With().Str("component", "analytics").Logger(),
	}
}

// WithPick replaces the uniform-choice source. pick receives the number
// of candidates (always > 0) and returns an index into them. Used by
// tests to make the random-artist selection deterministic.
func (s *Service) WithPick(pick func(n int) int) *Service {
	s.pick = pick
	return s
}

// Run executes the full fetch sequence for one artist and assembles the
// report. It fails with ErrArtistNotFound or ErrNoAlbums at the two
// checkpoints; any other error is a transport or decode failure from
// the catalog client.
func (s *Service) Run(ctx context.Context, artistName string) (*Report, error) {
	artist, err := s.catalog.SearchArtist(ctx, artistName)
	if err != nil {
		return nil, err
	}
	if artist == nil {
		return nil, fmt.Errorf("%w: %q", ErrArtistNotFound, artistName)
	}

	s.logger.Debug().
		Str("artist", artist.Name).
		Str("id", artist.ID).
		Msg("Resolved artist")

	topTracks, err := s.catalog.GetArtistTopTracks(ctx, artist.ID, "")
	if err != nil {
		return nil, err
	}

	albums, err := s.catalog.GetArtistAlbums(ctx, artist.ID, latestAlbumGroups, "", 1)
	if err != nil {
		return nil, err
	}
	if len(albums) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoAlbums, artist.Name)
	}
	latest := albums[0]

	albumTracks, err := s.catalog.GetAlbumTracks(ctx, latest.ID, albumTrackLimit)
	if err != nil {
		return nil, err
	}

	releases, err := s.catalog.GetNewReleases(ctx, newReleaseLimit)
	if err != nil {
		return nil, err
	}

	popular := ExtractPopularArtists(releases, artist.Name, popularArtistLimit)

	randomArtist, err := s.pickRandomArtist(ctx, popular)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("artist", artist.Name).
		Int("top_tracks", len(topTracks)).
		Int("popular_artists", len(popular)).
		Msg("Aggregation complete")

	names := make([]string, 0, len(popular))
	for _, p := range popular {
		names = append(names, p.Name)
	}

	return &Report{
		Artist:    artistInfo(artist),
		TopTracks: trackInfos(topTracks, topTrackLimit),
		LatestAlbum: AlbumInfo{
			Name:        latest.Name,
			ReleaseDate: latest.ReleaseDate,
			Image:       optionalURL(latest.ImageURL),
			Tracks:      trackInfos(albumTracks, albumTrackLimit),
		},
		PopularArtists: names,
		RandomArtist:   randomArtist,
	}, nil
}

// pickRandomArtist selects one popular artist uniformly and fetches its
// full profile and top tracks. Returns nil when there is nothing to
// pick from, or when the catalog has no profile for the pick.
func (s *Service) pickRandomArtist(ctx context.Context, popular []PopularArtist) (*RandomArtistInfo, error) {
	if len(popular) == 0 {
		return nil, nil
	}

	choice := popular[s.pick(len(popular))]

	detail, err := s.catalog.GetArtist(ctx, choice.ID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, nil
	}

	topTracks, err := s.catalog.GetArtistTopTracks(ctx, detail.ID, "")
	if err != nil {
		return nil, err
	}

	return &RandomArtistInfo{
		Name:       detail.Name,
		Followers:  detail.Followers,
		Popularity: detail.Popularity,
		Image:      optionalURL(detail.ImageURL),
		Genres:     detail.Genres,
		TopTracks:  trackNames(topTracks, randomTopTrackLimit),
	}, nil
}
