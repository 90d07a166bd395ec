package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// Environment selects which provider host a run talks to. The secondary
// environment serves synthetic prices and exists as a degraded fallback.
const (
	EnvPrimary   = "primary"
	EnvSecondary = "secondary"
)

// Credentials is the client-credentials pair used for the token exchange.
// Each run re-authenticates; tokens are never cached across runs.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// AuthError reports that no environment yielded a credential. It keeps both
// underlying causes so the operator can see which environment failed and why.
type AuthError struct {
	PrimaryErr   error
	SecondaryErr error
}

func (e *AuthError) Error() string {
	if e.PrimaryErr == nil {
		return fmt.Sprintf("authentication failed: secondary: %v", e.SecondaryErr)
	}
	return fmt.Sprintf("authentication failed: primary: %v; secondary: %v", e.PrimaryErr, e.SecondaryErr)
}

func (e *AuthError) Unwrap() error { return e.SecondaryErr }

// Authenticate obtains a bearer token and records which environment supplied
// it. With env == EnvSecondary only the secondary host is tried; otherwise
// the primary host is tried first and the secondary once on any failure.
// Both failing is fatal for the run.
func (c *Client) Authenticate(ctx context.Context, creds Credentials, env string) (string, error) {
	if env == EnvSecondary {
		token, err := c.fetchToken(ctx, c.SecondaryURL, creds)
		if err != nil {
			return "", &AuthError{SecondaryErr: err}
		}
		c.useEnvironment(EnvSecondary, token)
		return EnvSecondary, nil
	}

	token, primaryErr := c.fetchToken(ctx, c.PrimaryURL, creds)
	if primaryErr == nil {
		c.useEnvironment(EnvPrimary, token)
		return EnvPrimary, nil
	}
	c.Log.Warn("primary environment rejected, falling back", zap.Error(primaryErr))

	token, secondaryErr := c.fetchToken(ctx, c.SecondaryURL, creds)
	if secondaryErr != nil {
		return "", &AuthError{PrimaryErr: primaryErr, SecondaryErr: secondaryErr}
	}
	c.useEnvironment(EnvSecondary, token)
	return EnvSecondary, nil
}

func (c *Client) useEnvironment(env, token string) {
	if env == EnvSecondary {
		c.baseURL = c.SecondaryURL
	} else {
		c.baseURL = c.PrimaryURL
	}
	c.token = token
}

func (c *Client) fetchToken(ctx context.Context, baseURL string, creds Credentials) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {creds.ClientID},
		"client_secret": {creds.ClientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned empty access_token")
	}
	return tok.AccessToken, nil
}
