package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"github.com/gianghaison/gianghaison.me/config"
	"github.com/gianghaison/gianghaison.me/middleware"
	"github.com/gianghaison/gianghaison.me/utils"
)

const oauthStateTTL = 10 * time.Minute

// AuthController handles admin sessions: password login, GitHub OAuth
// login restricted to one account, logout via token blacklist.
type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

func sessionDuration() time.Duration {
	return time.Duration(config.Get().SessionHours) * time.Hour
}

func setSessionCookie(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookieName, token,
		int(sessionDuration().Seconds()), "/", "", false, true)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the credentials against the configured admin account and
// issues a session token, returned in the body and as an HttpOnly cookie.
func (a *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "email and password are required")
		return
	}

	cfg := config.Get()
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.EqualFold(email, cfg.AdminEmail) ||
		!utils.CheckPassword(cfg.AdminPasswordHash, req.Password) {
		utils.Logger.Warn("login rejected",
			zap.String("email", email),
			zap.String("ip", ctx.ClientIP()))
		utils.Error(ctx, http.StatusUnauthorized, 40110, "invalid email or password")
		return
	}

	token, err := utils.GenerateSessionToken(cfg.AdminEmail, sessionDuration())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to create session")
		return
	}

	setSessionCookie(ctx, token)
	utils.Logger.Info("admin logged in", zap.String("email", cfg.AdminEmail))
	utils.Success(ctx, gin.H{"token": token, "email": cfg.AdminEmail})
}

// Logout blacklists the current token for its remaining lifetime and
// clears the session cookie.
func (a *AuthController) Logout(ctx *gin.Context) {
	token := ctx.GetString(middleware.ContextTokenKey)
	if token != "" {
		expiry := time.Now().Add(sessionDuration())
		if claims, err := utils.ParseSessionToken(token); err == nil && claims.ExpiresAt != nil {
			expiry = claims.ExpiresAt.Time
		}
		utils.BlacklistToken(token, expiry)
	}

	ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Check reports whether the request carries a valid session.
func (a *AuthController) Check(ctx *gin.Context) {
	utils.Success(ctx, gin.H{
		"authenticated": true,
		"email":         ctx.GetString(middleware.ContextEmailKey),
	})
}

func oauthConfig(cfg config.AppConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GitHubClientID,
		ClientSecret: cfg.GitHubClientSecret,
		Endpoint:     githuboauth.Endpoint,
		RedirectURL:  cfg.OAuthRedirectBase + "/api/auth/github/callback",
		Scopes:       []string{"read:user"},
	}
}

// GitHubRedirect starts the OAuth flow with a single-use state token.
func (a *AuthController) GitHubRedirect(ctx *gin.Context) {
	cfg := config.Get()
	if cfg.GitHubClientID == "" {
		utils.Error(ctx, http.StatusNotImplemented, 50110, "github login is not configured")
		return
	}

	state := uuid.NewString()
	utils.SaveState(state, oauthStateTTL)
	ctx.Redirect(http.StatusFound, oauthConfig(cfg).AuthCodeURL(state))
}

// GitHubCallback completes the OAuth flow. Only the configured GitHub
// login is accepted; anyone else gets a session-less 403.
func (a *AuthController) GitHubCallback(ctx *gin.Context) {
	cfg := config.Get()

	if !utils.ConsumeState(ctx.Query("state")) {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid oauth state")
		return
	}
	code := ctx.Query("code")
	if code == "" {
		utils.Error(ctx, http.StatusBadRequest, 40012, "missing oauth code")
		return
	}

	oc := oauthConfig(cfg)
	tokenCtx, cancel := context.WithTimeout(ctx.Request.Context(), 10*time.Second)
	defer cancel()

	token, err := oc.Exchange(tokenCtx, code)
	if err != nil {
		utils.Logger.Warn("oauth exchange failed", zap.Error(err))
		utils.Error(ctx, http.StatusBadGateway, 50210, "oauth exchange failed")
		return
	}

	login, err := fetchGitHubLogin(tokenCtx, oc, token)
	if err != nil {
		utils.Logger.Warn("github profile fetch failed", zap.Error(err))
		utils.Error(ctx, http.StatusBadGateway, 50211, "failed to fetch github profile")
		return
	}

	if !strings.EqualFold(login, cfg.GitHubAdminLogin) {
		utils.Logger.Warn("oauth login rejected", zap.String("login", login))
		utils.Error(ctx, http.StatusForbidden, 40310, "account is not authorized")
		return
	}

	session, err := utils.GenerateSessionToken(cfg.AdminEmail, sessionDuration())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to create session")
		return
	}

	setSessionCookie(ctx, session)
	utils.Logger.Info("admin logged in via github", zap.String("login", login))
	ctx.Redirect(http.StatusFound, "/admin")
}

func fetchGitHubLogin(ctx context.Context, oc *oauth2.Config, token *oauth2.Token) (string, error) {
	resp, err := oc.Client(ctx, token).Get("https://api.github.com/user")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var profile struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return "", err
	}
	return profile.Login, nil
}
