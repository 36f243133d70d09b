package spotify

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

const rankedSearchLimit = 5

type searchResponse struct {
	Artists struct {
		Items []artistObject `json:"items"`
	} `json:"artists"`
}

type topTracksResponse struct {
	Tracks []trackObject `json:"tracks"`
}

type albumsResponse struct {
	Items []albumObject `json:"items"`
}

type albumTracksResponse struct {
	Items []trackObject `json:"items"`
}

type newReleasesResponse struct {
	Albums struct {
		Items []albumObject `json:"items"`
	} `json:"albums"`
}

// SearchArtist resolves an artist name to a single artist, or nil when
// nothing matches.
//
// With StrategyExact the single top result is taken as-is. With
// StrategyRanked (the default) up to five candidates are fetched; a
// case-insensitive exact name match wins, otherwise the candidate with
// the highest popularity.
func (c *Client) SearchArtist(ctx context.Context, name string) (*Artist, error) {
	limit := 1
	if c.strategy == StrategyRanked {
		limit = rankedSearchLimit
	}

	params := url.Values{}
	params.Set("q", name)
	params.Set("type", "artist")
	params.Set("limit", strconv.Itoa(limit))

	var result searchResponse
	ok, err := c.get(ctx, "/search", params, &result)
	if err != nil {
		return nil, err
	}
	if !ok || len(result.Artists.Items) == 0 {
		return nil, nil
	}

	items := result.Artists.Items
	if c.strategy == StrategyExact {
		artist := newArtist(items[0])
		return &artist, nil
	}

	best := items[0]
	for _, item := range items {
		if strings.EqualFold(item.Name, name) {
			artist := newArtist(item)
			return &artist, nil
		}
		if item.Popularity > best.Popularity {
			best = item
		}
	}

	artist := newArtist(best)
	return &artist, nil
}

// GetArtist fetches full artist details by ID, or nil if the catalog
// has no data for it.
func (c *Client) GetArtist(ctx context.Context, artistID string) (*Artist, error) {
	var result artistObject
	ok, err := c.get(ctx, "/artists/"+artistID, nil, &result)
	if err != nil || !ok {
		return nil, err
	}

	artist := newArtist(result)
	return &artist, nil
}

// GetArtistTopTracks fetches an artist's top tracks for a market. An
// empty market falls back to the client's configured default.
func (c *Client) GetArtistTopTracks(ctx context.Context, artistID, market string) ([]Track, error) {
	if market == "" {
		market = c.market
	}

	params := url.Values{}
	params.Set("market", market)

	var result topTracksResponse
	ok, err := c.get(ctx, "/artists/"+artistID+"/top-tracks", params, &result)
	if err != nil || !ok {
		return nil, err
	}

	tracks := make([]Track, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		tracks = append(tracks, newTrack(t))
	}
	return tracks, nil
}

// GetArtistAlbums fetches an artist's albums filtered by include
// groups (comma-separated: album, single, compilation), newest first
// per the catalog's ordering.
func (c *Client) GetArtistAlbums(ctx context.Context, artistID, includeGroups, market string, limit int) ([]Album, error) {
	if market == "" {
		market = c.market
	}

	params := url.Values{}
	params.Set("include_groups", includeGroups)
	params.Set("market", market)
	params.Set("limit", strconv.Itoa(limit))

	var result albumsResponse
	ok, err := c.get(ctx, "/artists/"+artistID+"/albums", params, &result)
	if err != nil || !ok {
		return nil, err
	}

	albums := make([]Album, 0, len(result.Items))
	for _, a := range result.Items {
		albums = append(albums, newAlbum(a))
	}
	return albums, nil
}

// GetAlbumTracks fetches up to limit tracks from an album.
func (c *Client) GetAlbumTracks(ctx context.Context, albumID string, limit int) ([]Track, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var result albumTracksResponse
	ok, err := c.get(ctx, "/albums/"+albumID+"/tracks", params, &result)
	if err != nil || !ok {
		return nil, err
	}

	tracks := make([]Track, 0, len(result.Items))
	for _, t := range result.Items {
		tracks = append(tracks, newTrack(t))
	}
	return tracks, nil
}

// GetNewReleases fetches the featured new-release albums with their
// credited artists, in listing order.
func (c *Client) GetNewReleases(ctx context.Context, limit int) ([]NewRelease, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var result newReleasesResponse
	ok, err := c.get(ctx, "/browse/new-releases", params, &result)
	if err != nil || !ok {
		return nil, err
	}

	releases := make([]NewRelease, 0, len(result.Albums.Items))
	for _, a := range result.Albums.Items {
		releases = append(releases, newRelease(a))
	}
	return releases, nil
}
