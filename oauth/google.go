// Package oauth wraps the Google OAuth2 code flow for web and mobile
// clients.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/flowlyhq/flowly/core"
)

const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleClient drives the authorization-code exchange and userinfo lookup.
type GoogleClient struct {
	config      *oauth2.Config
	userInfoURL string
	client      *http.Client
}

func NewGoogleClient(clientID, clientSecret, redirectURL string) *GoogleClient {
	return &GoogleClient{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
				"openid",
			},
		},
		userInfoURL: defaultUserInfoURL,
		client:      http.DefaultClient,
	}
}

// AuthURL builds the consent-screen URL carrying the anti-forgery state.
func (g *GoogleClient) AuthURL(state string) string {
	return g.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange swaps the callback code for an access token.
func (g *GoogleClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}
	return token, nil
}

// FetchUser loads the Google profile behind an exchanged token.
func (g *GoogleClient) FetchUser(ctx context.Context, token *oauth2.Token) (*core.GoogleProfile, error) {
	return g.fetchUserInfo(ctx, token.AccessToken)
}

// FetchUserByAccessToken serves mobile clients that performed the oauth
// dance natively and only hand us the access token.
func (g *GoogleClient) FetchUserByAccessToken(ctx context.Context, accessToken string) (*core.GoogleProfile, error) {
	return g.fetchUserInfo(ctx, accessToken)
}

func (g *GoogleClient) fetchUserInfo(ctx context.Context, accessToken string) (*core.GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("google userinfo returned %d: %s", resp.StatusCode, detail)
	}

	var profile core.GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode google userinfo: %w", err)
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("google userinfo has no id")
	}
	return &profile, nil
}
