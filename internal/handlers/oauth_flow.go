package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"golfacademy/internal/security"
)

// OAuthHandler runs the Google sign-in code flow
type OAuthHandler struct {
	auth   *AuthHandler
	config *oauth2.Config
}

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// NewOAuthHandler creates the Google OAuth handler. Returns nil when the
// client credentials are not configured.
func NewOAuthHandler(auth *AuthHandler, clientID, clientSecret, redirectBase string) *OAuthHandler {
	if clientID == "" || clientSecret == "" {
		return nil
	}
	return &OAuthHandler{
		auth: auth,
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectBase + "/api/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://accounts.google.com/o/oauth2/auth",
				TokenURL: "https://oauth2.googleapis.com/token",
			},
		},
	}
}

func (h *OAuthHandler) setTempCookie(w http.ResponseWriter, r *http.Request, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		Secure:   security.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// Start handles GET /api/auth/google/start
func (h *OAuthHandler) Start(w http.ResponseWriter, r *http.Request) {
	state := security.GenerateSessionID()
	h.setTempCookie(w, r, "oauth_state", state)

	authURL := h.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback handles GET /api/auth/google/callback
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "missing authorization code", "", nil)
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		respondWithError(w, http.StatusBadRequest, "invalid OAuth state", "", err)
		return
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, "oauth_state"))

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "OAuth exchange failed", "Failed to exchange OAuth code", err)
		return
	}

	info, err := h.fetchUserInfo(r, token)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "failed to fetch user info", "Failed to fetch Google user info", err)
		return
	}
	if info.Email == "" {
		respondWithError(w, http.StatusBadGateway, "provider returned no email", "", nil)
		return
	}
	if info.Name == "" {
		info.Name = info.Email
	}

	user, err := h.auth.authService.LoginWithOAuth("google", info.ID, info.Email, info.Name)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "sign-in failed", "Failed to sign in with Google", err)
		return
	}

	h.auth.startSession(w, r, user, http.StatusOK)
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *OAuthHandler) fetchUserInfo(r *http.Request, token *oauth2.Token) (*googleUserInfo, error) {
	client := h.config.Client(r.Context(), token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}
