package analytics

import (
	"tunelens/pkg/spotify"
)

// TrackInfo is a track name with its formatted duration.
type TrackInfo struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
}

// ArtistInfo is the presentation shape of the primary artist.
type ArtistInfo struct {
	Name       string   `json:"name"`
	Followers  int      `json:"followers"`
	Popularity int      `json:"popularity"`
	Image      *string  `json:"image"`
	Genres     []string `json:"genres"`
}

// AlbumInfo is the presentation shape of the latest album with its
// leading tracks.
type AlbumInfo struct {
	Name        string      `json:"name"`
	ReleaseDate string      `json:"release_date"`
	Image       *string     `json:"image"`
	Tracks      []TrackInfo `json:"tracks"`
}

// RandomArtistInfo is ArtistInfo plus the artist's top track names.
type RandomArtistInfo struct {
	Name       string   `json:"name"`
	Followers  int      `json:"followers"`
	Popularity int      `json:"popularity"`
	Image      *string  `json:"image"`
	Genres     []string `json:"genres"`
	TopTracks  []string `json:"top_tracks"`
}

// Report is the combined result of one analytics run, shaped for both
// JSON and console presentation.
type Report struct {
	Artist         ArtistInfo        `json:"artist"`
	TopTracks      []TrackInfo       `json:"top_tracks"`
	LatestAlbum    AlbumInfo         `json:"latest_album"`
	PopularArtists []string          `json:"popular_artists"`
	RandomArtist   *RandomArtistInfo `json:"random_artist"`
}

func artistInfo(a *spotify.Artist) ArtistInfo {
	return ArtistInfo{
		Name:       a.Name,
		Followers:  a.Followers,
		Popularity: a.Popularity,
		Image:      optionalURL(a.ImageURL),
		Genres:     a.Genres,
	}
}

func trackInfos(tracks []spotify.Track, limit int) []TrackInfo {
	if len(tracks) > limit {
		tracks = tracks[:limit]
	}
	infos := make([]TrackInfo, 0, len(tracks))
	for _, t := range tracks {
		infos = append(infos, TrackInfo{Name: t.Name, Duration: t.FormattedDuration()})
	}
	return infos
}

func trackNames(tracks []spotify.Track, limit int) []string {
	if len(tracks) > limit {
		tracks = tracks[:limit]
	}
	names := make([]string, 0, len(tracks))
	for _, t := range tracks {
		names = append(names, t.Name)
	}
	return names
}

// optionalURL maps an empty URL to JSON null.
func optionalURL(u string) *string {
	if u == "" {
		return nil
	}
	return &u
}
