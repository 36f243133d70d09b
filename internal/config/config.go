package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// DefaultArtist is the artist analyzed when none is supplied
	DefaultArtist string

	// ListenAddr is the HTTP server bind address for the serve command
	ListenAddr string

	// HistoryDB is the path of the local run-history database.
	// Empty disables history recording.
	HistoryDB string

	// Spotify API credentials and defaults
	Spotify SpotifyConfig
}

// SpotifyConfig holds catalog API specific configuration
type SpotifyConfig struct {
	ClientID       string
	ClientSecret   string
	Market         string
	SearchStrategy string
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	// A local .env can carry the credentials, as the original deployments did
	_ = godotenv.Load()

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("default_artist", "Mt Joy")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("history_db", filepath.Join(getDataDir(), "history.db"))
	v.SetDefault("spotify.market", "US")
	v.SetDefault("spotify.search_strategy", "ranked")

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables
	v.SetEnvPrefix("TUNELENS")
	v.AutomaticEnv()

	// Credentials keep the variable names the original deployments used
	_ = v.BindEnv("spotify.client_id", "SPOTIFY_CLIENT_ID")
	_ = v.BindEnv("spotify.client_secret", "SPOTIFY_CLIENT_SECRET")

	// Map config to struct
	cfg := &Config{
		DefaultArtist: v.GetString("default_artist"),
		ListenAddr:    v.GetString("listen_addr"),
		HistoryDB:     v.GetString("history_db"),
		Spotify: SpotifyConfig{
			ClientID:       v.GetString("spotify.client_id"),
			ClientSecret:   v.GetString("spotify.client_secret"),
			Market:         v.GetString("spotify.market"),
			SearchStrategy: v.GetString("spotify.search_strategy"),
		},
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "tunelens")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// getDataDir returns the data directory path for local state
func getDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	dataDir := filepath.Join(homeDir, ".local", "share", "tunelens")
	_ = os.MkdirAll(dataDir, 0755)

	return dataDir
}
