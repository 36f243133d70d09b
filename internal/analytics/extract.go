package analytics

import (
	"tunelens/pkg/spotify"
)

// PopularArtist is a name/ID pair pulled out of a new-releases listing.
// It is produced only by ExtractPopularArtists and never persisted.
type PopularArtist struct {
	Name string
	ID   string
}

// ExtractPopularArtists walks the releases in order, collecting unique
// artist names (first occurrence wins) while skipping excludeName, and
// returns as soon as limit entries have been collected.
//
// The early return matters: it short-circuits the scan rather than
// filtering and truncating, so which entries are chosen under ordering
// ties is stable. Given the same input, output is exactly reproducible;
// randomness enters only in the caller.
func ExtractPopularArtists(releases []spotify.NewRelease, excludeName string, limit int) []PopularArtist {
	popular := []PopularArtist{}
	if limit <= 0 {
		return popular
	}

	seen := make(map[string]struct{})
	for _, release := range releases {
		for _, artist := range release.Artists {
			if artist.Name == excludeName {
				continue
			}
			if _, ok := seen[artist.Name]; ok {
				continue
			}
			popular = append(popular, PopularArtist{Name: artist.Name, ID: artist.ID})
			seen[artist.Name] = struct{}{}
			if len(popular) >= limit {
				return popular
			}
		}
	}

	return popular
}
