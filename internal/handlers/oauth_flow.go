package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"buddy/internal/service"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleOAuth runs the parent sign-in flow against Google
type GoogleOAuth struct {
	config      *oauth2.Config
	authService *service.AuthService
	appBaseURL  string
}

// NewGoogleOAuth creates the Google flow. Returns nil when the client
// credentials are not configured, which disables the routes.
func NewGoogleOAuth(clientID, clientSecret, appBaseURL string, authService *service.AuthService) *GoogleOAuth {
	if clientID == "" || clientSecret == "" {
		return nil
	}
	return &GoogleOAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  strings.TrimSuffix(appBaseURL, "/") + "/api/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		authService: authService,
		appBaseURL:  appBaseURL,
	}
}

// Start redirects the browser to Google's consent screen
func (g *GoogleOAuth) Start(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, g.config.AuthCodeURL(state, oauth2.AccessTypeOnline), http.StatusSeeOther)
}

// Callback exchanges the code, signs the parent in, and sends the
// browser back to the app with the token
func (g *GoogleOAuth) Callback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		respondError(w, http.StatusBadRequest, "invalid oauth state")
		return
	}
	// State cookies are single use.
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	token, err := g.config.Exchange(r.Context(), code)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to exchange authorization code")
		return
	}

	info, err := g.fetchUserInfo(r, token)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to fetch user info")
		return
	}
	if info.Email == "" {
		respondError(w, http.StatusBadGateway, "identity provider returned no email")
		return
	}

	result, err := g.authService.OAuthLogin(info.Email, info.GivenName, info.FamilyName)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	redirect := fmt.Sprintf("%s/login?%s",
		strings.TrimSuffix(g.appBaseURL, "/"),
		url.Values{"token": []string{result.Token}}.Encode())
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

type googleUserInfo struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

func (g *GoogleOAuth) fetchUserInfo(r *http.Request, token *oauth2.Token) (*googleUserInfo, error) {
	client := g.config.Client(r.Context(), token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request returned %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &info, nil
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
