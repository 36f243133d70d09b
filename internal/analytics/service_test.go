package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"tunelens/pkg/spotify"
)

// fakeCatalog serves canned responses and counts calls.
type fakeCatalog struct {
	searchResult *spotify.Artist
	searchErr    error

	artists map[string]*spotify.Artist

	topTracks map[string][]spotify.Track

	albums []spotify.Album

	albumTracks []spotify.Track

	releases []spotify.NewRelease

	searchCalls    int
	getArtistCalls int
	topTrackCalls  int
}

func (f *fakeCatalog) SearchArtist(ctx context.Context, name string) (*spotify.Artist, error) {
	f.searchCalls++
	return f.searchResult, f.searchErr
}

func (f *fakeCatalog) GetArtist(ctx context.Context, id string) (*spotify.Artist, error) {
	f.getArtistCalls++
	return f.artists[id], nil
}

func (f *fakeCatalog) GetArtistTopTracks(ctx context.Context, id, market string) ([]spotify.Track, error) {
	f.topTrackCalls++
	return f.topTracks[id], nil
}

func (f *fakeCatalog) GetArtistAlbums(ctx context.Context, id, includeGroups, market string, limit int) ([]spotify.Album, error) {
	return f.albums, nil
}

func (f *fakeCatalog) GetAlbumTracks(ctx context.Context, id string, limit int) ([]spotify.Track, error) {
	tracks := f.albumTracks
	if len(tracks) > limit {
		tracks = tracks[:limit]
	}
	return tracks, nil
}

func (f *fakeCatalog) GetNewReleases(ctx context.Context, limit int) ([]spotify.NewRelease, error) {
	return f.releases, nil
}

func manyTracks(prefix string, n int) []spotify.Track {
	tracks := make([]spotify.Track, 0, n)
	for i := 0; i < n; i++ {
		tracks = append(tracks, spotify.Track{
			ID:         prefix + string(rune('a'+i)),
			Name:       prefix + " track " + string(rune('A'+i)),
			DurationMS: 125000,
		})
	}
	return tracks
}

func happyCatalog() *fakeCatalog {
	primary := &spotify.Artist{
		ID:         "mtjoy",
		Name:       "Mt Joy",
		Followers:  800000,
		Popularity: 68,
		ImageURL:   "https://img/mtjoy",
		Genres:     []string{"indie folk"},
	}
	other := &spotify.Artist{
		ID:         "idB",
		Name:       "B",
		Followers:  1000,
		Popularity: 40,
		Genres:     []string{},
	}

	return &fakeCatalog{
		searchResult: primary,
		artists: map[string]*spotify.Artist{
			"mtjoy": primary,
			"idB":   other,
			"idC":   {ID: "idC", Name: "C", Genres: []string{}},
			"idD":   {ID: "idD", Name: "D", Genres: []string{}},
		},
		topTracks: map[string][]spotify.Track{
			"mtjoy": manyTracks("top", 7),
			"idB":   manyTracks("b", 4),
			"idC":   manyTracks("c", 4),
			"idD":   manyTracks("d", 4),
		},
		albums: []spotify.Album{
			{ID: "album1", Name: "Orange Blood", ReleaseDate: "2022-10-21", ImageURL: "https://img/cover"},
		},
		albumTracks: manyTracks("album", 9),
		releases: []spotify.NewRelease{
			{ID: "r1", Artists: []spotify.ArtistRef{{ID: "mtjoy", Name: "Mt Joy"}, {ID: "idB", Name: "B"}}},
			{ID: "r2", Artists: []spotify.ArtistRef{{ID: "idC", Name: "C"}}},
			{ID: "r3", Artists: []spotify.ArtistRef{{ID: "idD", Name: "D"}, {ID: "idB-dup", Name: "B"}}},
		},
	}
}

func TestService_Run_HappyPath(t *testing.T) {
	catalog := happyCatalog()
	svc := New(catalog, zerolog.Nop()).WithPick(func(n int) int { return 0 })

	report, err := svc.Run(context.Background(), "Mt Joy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Artist.Name != "Mt Joy" {
		t.Errorf("expected primary artist Mt Joy, got %s", report.Artist.Name)
	}
	if report.Artist.Followers != 800000 {
		t.Errorf("expected 800000 followers, got %d", report.Artist.Followers)
	}
	if len(report.TopTracks) != 5 {
		t.Errorf("expected top tracks capped at 5, got %d", len(report.TopTracks))
	}
	if report.TopTracks[0].Duration != "2:05" {
		t.Errorf("expected formatted duration 2:05, got %s", report.TopTracks[0].Duration)
	}
	if report.LatestAlbum.Name != "Orange Blood" || report.LatestAlbum.ReleaseDate != "2022-10-21" {
		t.Errorf("unexpected latest album %+v", report.LatestAlbum)
	}
	if len(report.LatestAlbum.Tracks) != 5 {
		t.Errorf("expected album tracks capped at 5, got %d", len(report.LatestAlbum.Tracks))
	}

	// Popular artists exclude the primary artist and collapse duplicates.
	want := []string{"B", "C", "D"}
	if len(report.PopularArtists) != len(want) {
		t.Fatalf("expected popular artists %v, got %v", want, report.PopularArtists)
	}
	for i, name := range want {
		if report.PopularArtists[i] != name {
			t.Errorf("popular artist %d: expected %s, got %s", i, name, report.PopularArtists[i])
		}
	}

	if report.RandomArtist == nil {
		t.Fatal("expected a random artist")
	}
	if report.RandomArtist.Name != "B" {
		t.Errorf("pick(0) should select B, got %s", report.RandomArtist.Name)
	}
	if len(report.RandomArtist.TopTracks) != 3 {
		t.Errorf("expected random artist top tracks capped at 3, got %d", len(report.RandomArtist.TopTracks))
	}

	found := false
	for _, name := range report.PopularArtists {
		if name == report.RandomArtist.Name {
			found = true
		}
	}
	if !found {
		t.Errorf("random artist %s must be one of the popular names %v", report.RandomArtist.Name, report.PopularArtists)
	}
}

func TestService_Run_ArtistNotFound(t *testing.T) {
	catalog := &fakeCatalog{searchResult: nil}
	svc := New(catalog, zerolog.Nop())

	_, err := svc.Run(context.Background(), "Nobody")
	if !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}
	if catalog.topTrackCalls != 0 {
		t.Errorf("no further calls expected after failed search, got %d", catalog.topTrackCalls)
	}
}

func TestService_Run_NoAlbums(t *testing.T) {
	catalog := happyCatalog()
	catalog.albums = nil
	svc := New(catalog, zerolog.Nop())

	_, err := svc.Run(context.Background(), "Mt Joy")
	if !errors.Is(err, ErrNoAlbums) {
		t.Fatalf("expected ErrNoAlbums, got %v", err)
	}
}

func TestService_Run_EmptyExtractionSkipsRandomFetch(t *testing.T) {
	catalog := happyCatalog()
	// Every release credits only the primary artist, so extraction is empty.
	catalog.releases = []spotify.NewRelease{
		{ID: "r1", Artists: []spotify.ArtistRef{{ID: "mtjoy", Name: "Mt Joy"}}},
	}
	svc := New(catalog, zerolog.Nop())

	report, err := svc.Run(context.Background(), "Mt Joy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.RandomArtist != nil {
		t.Errorf("expected nil random artist, got %+v", report.RandomArtist)
	}
	if catalog.getArtistCalls != 0 {
		t.Errorf("expected no profile fetch when extraction is empty, got %d", catalog.getArtistCalls)
	}
	if len(report.PopularArtists) != 0 {
		t.Errorf("expected no popular artists, got %v", report.PopularArtists)
	}
}

func TestService_Run_MissingRandomProfileYieldsNull(t *testing.T) {
	catalog := happyCatalog()
	delete(catalog.artists, "idB")
	svc := New(catalog, zerolog.Nop()).WithPick(func(n int) int { return 0 })

	report, err := svc.Run(context.Background(), "Mt Joy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.RandomArtist != nil {
		t.Errorf("expected nil random artist when profile fetch returns nothing, got %+v", report.RandomArtist)
	}
}

func TestService_Run_SearchErrorPropagates(t *testing.T) {
	catalog := &fakeCatalog{searchErr: errors.New("connection reset")}
	svc := New(catalog, zerolog.Nop())

	_, err := svc.Run(context.Background(), "Mt Joy")
	if err == nil || errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected transport error to propagate, got %v", err)
	}
}

func TestService_Run_PickIsUniformOverCandidates(t *testing.T) {
	catalog := happyCatalog()
	var gotN int
	svc := New(catalog, zerolog.Nop()).WithPick(func(n int) int {
		gotN = n
		return n - 1
	})

	report, err := svc.Run(context.Background(), "Mt Joy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotN != 3 {
		t.Errorf("pick should see all 3 candidates, got %d", gotN)
	}
	if report.RandomArtist == nil || report.RandomArtist.Name != "D" {
		t.Errorf("pick(n-1) should select D, got %+v", report.RandomArtist)
	}
}
