package spotify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClient_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "missing both",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name:    "missing secret",
			cfg:     Config{ClientID: "id"},
			wantErr: true,
		},
		{
			name:    "missing id",
			cfg:     Config{ClientSecret: "secret"},
			wantErr: true,
		},
		{
			name:    "complete",
			cfg:     Config{ClientID: "id", ClientSecret: "secret"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestClient_Authenticate(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		response   string
		wantErr    bool
	}{
		{
			name:       "success",
			statusCode: http.StatusOK,
			response:   `{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`,
			wantErr:    false,
		},
		{
			name:       "rejected credentials",
			statusCode: http.StatusBadRequest,
			response:   `{"error":"invalid_client"}`,
			wantErr:    true,
		},
		{
			name:       "missing token field",
			statusCode: http.StatusOK,
			response:   `{"token_type":"Bearer"}`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != "POST" {
					t.Errorf("expected POST request, got %s", r.Method)
				}
				if err := r.ParseForm(); err != nil {
					t.Fatalf("failed to parse form: %v", err)
				}
				if grant := r.FormValue("grant_type"); grant != "client_credentials" {
					t.Errorf("expected grant_type client_credentials, got %s", grant)
				}
				// client_credentials travels in the Basic auth header
				user, pass, ok := r.BasicAuth()
				if !ok || user != "test-id" || pass != "test-secret" {
					t.Errorf("unexpected basic auth: %s:%s ok=%v", user, pass, ok)
				}

				w.WriteHeader(tt.statusCode)
				if _, err := w.Write([]byte(tt.response)); err != nil {
					t.Fatalf("failed to write response body: %v", err)
				}
			}))
			defer server.Close()

			client, err := NewClient(Config{
				ClientID:     "test-id",
				ClientSecret: "test-secret",
				TokenURL:     server.URL,
			})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			err = client.Authenticate(context.Background())
			if tt.wantErr {
				if !errors.Is(err, ErrAuthFailed) {
					t.Fatalf("expected ErrAuthFailed, got %v", err)
				}
				if client.Authenticated() {
					t.Error("client should not be authenticated after failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !client.Authenticated() {
				t.Error("client should be authenticated")
			}
		})
	}
}

func TestClient_DataCallsFailFastBeforeAuth(t *testing.T) {
	client, err := NewClient(Config{
		ClientID:     "test-id",
		ClientSecret: "test-secret",
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	ctx := context.Background()

	if _, err := client.SearchArtist(ctx, "Mt Joy"); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("SearchArtist: expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := client.GetArtist(ctx, "abc"); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("GetArtist: expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := client.GetArtistTopTracks(ctx, "abc", ""); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("GetArtistTopTracks: expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := client.GetArtistAlbums(ctx, "abc", "album", "", 1); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("GetArtistAlbums: expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := client.GetAlbumTracks(ctx, "abc", 5); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("GetAlbumTracks: expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := client.GetNewReleases(ctx, 20); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("GetNewReleases: expected ErrNotAuthenticated, got %v", err)
	}
}
