package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	appidentity "github.com/balmstore/backend/internal/application/identity"
	"github.com/balmstore/backend/internal/infrastructure/config"
)

// Google OAuth endpoints
const (
	googleAuthEndpoint     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenEndpoint    = "https://oauth2.googleapis.com/token"
	googleUserinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

	// maxGoogleResponseSize limits the response body size to prevent memory exhaustion
	maxGoogleResponseSize = 1 * 1024 * 1024
)

// GoogleProvider exchanges OAuth authorization codes with Google and
// fetches the authenticated user's profile
type GoogleProvider struct {
	clientID     string
	clientSecret string
	redirectURL  string
	httpClient   *http.Client

	// overridable in tests
	tokenEndpoint    string
	userinfoEndpoint string
}

// NewGoogleProvider creates a Google OAuth provider from configuration.
// Returns nil when the integration is not configured so callers can
// treat OAuth as an optional feature.
func NewGoogleProvider(cfg config.GoogleOAuthConfig) *GoogleProvider {
	if !cfg.Enabled() {
		return nil
	}
	return &GoogleProvider{
		clientID:         cfg.ClientID,
		clientSecret:     cfg.ClientSecret,
		redirectURL:      cfg.RedirectURL,
		httpClient:       &http.Client{Timeout: 10 * time.Second},
		tokenEndpoint:    googleTokenEndpoint,
		userinfoEndpoint: googleUserinfoEndpoint,
	}
}

// AuthURL builds the Google consent page URL for the given state token
func (p *GoogleProvider) AuthURL(state string) string {
	params := url.Values{}
	params.Set("client_id", p.clientID)
	params.Set("redirect_uri", p.redirectURL)
	params.Set("response_type", "code")
	params.Set("scope", "openid email profile")
	params.Set("state", state)
	params.Set("access_type", "online")
	return googleAuthEndpoint + "?" + params.Encode()
}

// Exchange trades an authorization code for tokens and returns the
// user's Google profile
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*appidentity.GoogleProfile, error) {
	token, err := p.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return p.fetchProfile(ctx, token)
}

type googleTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (p *GoogleProvider) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", p.redirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("google oauth: failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, err := p.doRequest(req)
	if err != nil {
		return "", err
	}

	var token googleTokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("google oauth: failed to decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("google oauth: token response contained no access token")
	}
	return token.AccessToken, nil
}

type googleUserinfoResponse struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (p *GoogleProvider) fetchProfile(ctx context.Context, accessToken string) (*appidentity.GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userinfoEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("google oauth: failed to create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	body, err := p.doRequest(req)
	if err != nil {
		return nil, err
	}

	var info googleUserinfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("google oauth: failed to decode userinfo response: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("google oauth: userinfo response contained no email")
	}

	return &appidentity.GoogleProfile{
		Email:         info.Email,
		EmailVerified: info.VerifiedEmail,
		Name:          info.Name,
		Picture:       info.Picture,
	}, nil
}

func (p *GoogleProvider) doRequest(req *http.Request) ([]byte, error) {
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google oauth: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxGoogleResponseSize))
	if err != nil {
		return nil, fmt.Errorf("google oauth: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("google oauth: HTTP %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
