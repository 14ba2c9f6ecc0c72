package api

import (
	"net/http"

	reqdto "swimbooking/internal/handler/dto/request"
	resdto "swimbooking/internal/handler/dto/response"
	"swimbooking/internal/handler/httperr"
	"swimbooking/internal/handler/middleware"
	"swimbooking/internal/pkg/config"
	"swimbooking/internal/pkg/cookie"
	"swimbooking/internal/pkg/errs"
	"swimbooking/internal/pkg/jwt"
	"swimbooking/internal/usecase/commands"
	"swimbooking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	commands   commands.AuthCommands
	queries    queries.UserQueries
	jwtService *jwt.Service
	cookieCfg  config.CookieConfig
}

func NewAuthHandler(cmds commands.AuthCommands, q queries.UserQueries, jwtService *jwt.Service, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		commands:   cmds,
		queries:    q,
		jwtService: jwtService,
		cookieCfg:  cfg.Cookie,
	}
}

// @Summary User login
// @Description Login with email and password. Also sets an HttpOnly access token cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.commands.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidCredentials), errs.Is(err, commands.ErrAuthenticationFailed):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "invalid_credentials", "Invalid email or password", nil)
		case errs.Is(err, commands.ErrUserInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "account_inactive", "Account is inactive", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "internal_error", "Internal server error", nil)
		}
		return
	}

	user, err := h.queries.GetCurrentUser(c.Request.Context(), result.UserID)
	if err != nil {
		h.respondUserError(c, err)
		return
	}

	cookie.SetAccessTokenCookie(c, h.cookieCfg, result.AccessToken, h.jwtService.TokenDuration())
	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.AccessToken,
		User:        user,
	})
}

// @Summary User logout
// @Description Clears the access token cookie. Bearer clients drop the token themselves.
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]any
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessTokenCookie(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.AuthorizedUserView
// @Failure 401 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "unauthenticated", "User not authenticated", nil)
		return
	}

	user, err := h.queries.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) respondUserError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, queries.ErrUserNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "user_not_found", "User not found", nil)
	case errs.Is(err, queries.ErrUserInactive):
		httperr.AbortWithError(c, http.StatusForbidden, err, "account_inactive", "Account is inactive", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "internal_error", "Internal server error", nil)
	}
}
