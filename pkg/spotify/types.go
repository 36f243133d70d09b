package spotify

import (
	"fmt"
)

// Artist represents a catalog artist. Values are immutable once mapped
// from an API response.
type Artist struct {
	ID         string   // Spotify artist ID
	Name       string   // Display name
	Followers  int      // Total follower count
	Popularity int      // Popularity score (0-100), meaning opaque to us
	ImageURL   string   // Profile image URL, empty if none
	Genres     []string // Genre tags, empty if none
}

// Album represents a catalog album.
type Album struct {
	ID          string // Spotify album ID
	Name        string // Album name
	ReleaseDate string // Free-form granularity (year, year-month, or date); "Unknown" if absent
	ImageURL    string // Cover art URL, empty if none
}

// Track represents a catalog track.
type Track struct {
	ID         string // Spotify track ID
	Name       string // Track name
	DurationMS int    // Duration in milliseconds
}

// FormattedDuration returns the track duration as M:SS with seconds
// zero-padded to two digits (125000ms -> "2:05").
func (t Track) FormattedDuration() string {
	minutes := t.DurationMS / 60000
	seconds := (t.DurationMS % 60000) / 1000
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// ArtistRef is the name/ID pair attached to albums in browse listings.
type ArtistRef struct {
	ID   string
	Name string
}

// NewRelease is one album from the new-releases browse listing together
// with its credited artists, in listing order.
type NewRelease struct {
	ID      string
	Name    string
	Artists []ArtistRef
}

// Wire types. Optional fields are resolved to defaults during mapping
// and never leak absent keys downstream.

type imageObject struct {
	URL string `json:"url"`
}

type artistObject struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Followers struct {
		Total int `json:"total"`
	} `json:"followers"`
	Popularity int           `json:"popularity"`
	Images     []imageObject `json:"images"`
	Genres     []string      `json:"genres"`
}

type artistRefObject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type albumObject struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	ReleaseDate string            `json:"release_date"`
	Images      []imageObject     `json:"images"`
	Artists     []artistRefObject `json:"artists"`
}

type trackObject struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DurationMS int    `json:"duration_ms"`
}

func newArtist(o artistObject) Artist {
	genres := o.Genres
	if genres == nil {
		genres = []string{}
	}
	return Artist{
		ID:         o.ID,
		Name:       o.Name,
		Followers:  o.Followers.Total,
		Popularity: o.Popularity,
		ImageURL:   firstImageURL(o.Images),
		Genres:     genres,
	}
}

func newAlbum(o albumObject) Album {
	releaseDate := o.ReleaseDate
	if releaseDate == "" {
		releaseDate = "Unknown"
	}
	return Album{
		ID:          o.ID,
		Name:        o.Name,
		ReleaseDate: releaseDate,
		ImageURL:    firstImageURL(o.Images),
	}
}

func newTrack(o trackObject) Track {
	return Track{
		ID:         o.ID,
		Name:       o.Name,
		DurationMS: o.DurationMS,
	}
}

func newRelease(o albumObject) NewRelease {
	artists := make([]ArtistRef, 0, len(o.Artists))
	for _, a := range o.Artists {
		artists = append(artists, ArtistRef{ID: a.ID, Name: a.Name})
	}
	return NewRelease{
		ID:      o.ID,
		Name:    o.Name,
		Artists: artists,
	}
}

func firstImageURL(images []imageObject) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}
