package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Authenticate exchanges the client credentials for a bearer token.
//
// Any transport failure, non-success status, or response missing the
// token field is reported as an error wrapping ErrAuthFailed. The token
// is held in memory for the lifetime of the client; there is no refresh
// logic.
func (c *Client) Authenticate(ctx context.Context) error {
	credentials := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, "POST", c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		c.logDebugf("spotify: token exchange rejected: %s %s", resp.Status, string(body))
		return fmt.Errorf("%w: unexpected status %d", ErrAuthFailed, resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("%w: response missing access_token", ErrAuthFailed)
	}

	c.accessToken = token.AccessToken
	c.logDebugf("spotify: authenticated")
	return nil
}

// get performs an authenticated GET against the catalog API and decodes
// the JSON body into out.
//
// A non-success status is not an error: it returns ok=false so callers
// can treat missing data as an empty result rather than aborting the
// whole aggregation. Transport and decode failures are real errors.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) (bool, error) {
	if c.accessToken == "" {
		return false, ErrNotAuthenticated
	}

	apiURL := c.baseURL + endpoint
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return false, fmt.Errorf("spotify: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("spotify: GET %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logDebugf("spotify: GET %s returned %d, treating as no data", endpoint, resp.StatusCode)
		return false, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("spotify: failed to decode %s response: %w", endpoint, err)
	}

	c.logDebugf("spotify: GET %s succeeded", endpoint)
	return true, nil
}
