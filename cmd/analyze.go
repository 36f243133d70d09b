/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tunelens/internal/analytics"
	"tunelens/internal/config"
	"tunelens/internal/history"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [artist]",
	Short: "Print an analytics report for an artist",
	Long: `Fetch an artist's profile, top tracks, and latest album from the
Spotify Web API, sample popular artists from the new-releases listing,
and spotlight one of them at random.

When no artist is given, the configured default_artist is analyzed.
Credentials are read from SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET
(a local .env file is honored).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("strategy", "", "Artist search strategy: exact or ranked (overrides config)")
	analyzeCmd.Flags().String("market", "", "Market for top tracks, e.g. US (overrides config)")
	analyzeCmd.Flags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	analyzeCmd.Flags().Bool("no-history", false, "Skip recording this run in the local history log")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if strategy, _ := cmd.Flags().GetString("strategy"); strategy != "" {
		cfg.Spotify.SearchStrategy = strategy
	}
	if market, _ := cmd.Flags().GetString("market"); market != "" {
		cfg.Spotify.Market = market
	}

	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		return fmt.Errorf("missing credentials: set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
	}

	artist := cfg.DefaultArtist
	if len(args) > 0 {
		artist = args[0]
	}
	if artist == "" {
		return fmt.Errorf("no artist given and no default_artist configured")
	}

	logLevel, _ := cmd.Flags().GetString("log-level")
	logger := setupLogger("", logLevel)

	runner := analytics.NewRunner(cfg.Spotify.Market, cfg.Spotify.SearchStrategy, logger)

	creds := analytics.Credentials{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
	}

	report, err := runner.Run(ctx, creds, artist)
	if err != nil {
		return err
	}

	fmt.Print(renderReport(report))

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if !noHistory && cfg.HistoryDB != "" {
		recordHistory(ctx, cfg.HistoryDB, report, logger)
	}

	return nil
}

// recordHistory appends the run to the local log. Failures are logged
// but never fail the command; the report was already printed.
func recordHistory(ctx context.Context, dbPath string, report *analytics.Report, logger zerolog.Logger) {
	store, err := history.Open(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to open history database")
		return
	}
	defer store.Close()

	run := history.Run{
		Artist:     report.Artist.Name,
		Followers:  report.Artist.Followers,
		Popularity: report.Artist.Popularity,
	}
	if report.RandomArtist != nil {
		run.RandomArtist = report.RandomArtist.Name
	}

	if _, err := store.Record(ctx, run); err != nil {
		logger.Warn().Err(err).Msg("Failed to record run history")
	}
}

// renderReport formats the full report for the console. Sections
// mirror the JSON shape: artist stats, top tracks, latest album,
// popular artists, random spotlight.
func renderReport(report *analytics.Report) string {
	var b strings.Builder

	header := fmt.Sprintf("%s ANALYTICS", strings.ToUpper(report.Artist.Name))
	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("=", maxInt(len(header), 40)) + "\n\n")

	b.WriteString("1. Artist Stats:\n")
	writeArtistStats(&b, report.Artist.Name, report.Artist.Followers, report.Artist.Popularity, report.Artist.Genres)

	b.WriteString("\n   Top Tracks:\n")
	writeTrackList(&b, report.TopTracks)

	b.WriteString("\n2. Latest Album:\n")
	b.WriteString(fmt.Sprintf("   %s (%s)\n", report.LatestAlbum.Name, report.LatestAlbum.ReleaseDate))
	writeTrackList(&b, report.LatestAlbum.Tracks)

	b.WriteString("\n3. Popular Artists:\n")
	if len(report.PopularArtists) == 0 {
		b.WriteString("   (none found)\n")
	}
	for i, name := range report.PopularArtists {
		b.WriteString(fmt.Sprintf("   %2d. %s\n", i+1, name))
	}

	b.WriteString("\n4. Random Artist Spotlight:\n")
	if report.RandomArtist == nil {
		b.WriteString("   (none selected)\n")
	} else {
		writeArtistStats(&b, report.RandomArtist.Name, report.RandomArtist.Followers, report.RandomArtist.Popularity, report.RandomArtist.Genres)
		if len(report.RandomArtist.TopTracks) > 0 {
			b.WriteString(fmt.Sprintf("   Top tracks: %s\n", strings.Join(report.RandomArtist.TopTracks, ", ")))
		}
	}

	return b.String()
}

func writeArtistStats(b *strings.Builder, name string, followers, popularity int, genres []string) {
	b.WriteString(fmt.Sprintf("   %s\n", name))
	b.WriteString(fmt.Sprintf("   Followers:  %s\n", humanize.Comma(int64(followers))))
	b.WriteString(fmt.Sprintf("   Popularity: %d/100\n", popularity))
	if len(genres) > 0 {
		b.WriteString(fmt.Sprintf("   Genres:     %s\n", strings.Join(genres, ", ")))
	}
}

// writeTrackList prints a numbered track list with durations in an
// aligned column. Width is measured in display columns so non-ASCII
// track names line up too.
func writeTrackList(b *strings.Builder, tracks []analytics.TrackInfo) {
	if len(tracks) == 0 {
		b.WriteString("   (no tracks)\n")
		return
	}

	nameWidth := 0
	for _, t := range tracks {
		if w := runewidth.StringWidth(t.Name); w > nameWidth {
			nameWidth = w
		}
	}

	for i, t := range tracks {
		padded := t.Name + strings.Repeat(" ", nameWidth-runewidth.StringWidth(t.Name))
		b.WriteString(fmt.Sprintf("   %2d. %s  (%s)\n", i+1, padded, t.Duration))
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
