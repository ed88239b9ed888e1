package handlers

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/middleware"
	"github.com/SscSPs/school_ledger/internal/platform/config"
	"github.com/SscSPs/school_ledger/internal/utils"
)

// AuthHandler handles authentication related requests.
// The ledger has a single administrative login configured through the environment.
type AuthHandler struct {
	adminUsername     string
	adminPasswordHash string
	jwtSecret         string
	jwtIssuer         string
	jwtDuration       time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		adminUsername:     cfg.AdminUsername,
		adminPasswordHash: cfg.AdminPasswordHash,
		jwtSecret:         cfg.JWTSecret,
		jwtIssuer:         cfg.JWTIssuer,
		jwtDuration:       cfg.JWTExpiryDuration,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config) error {
	h := NewAuthHandler(cfg)

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("login rate limit: %w", err)
	}

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.GinMiddlewarize(loginLimiter), h.Login)
	}
	return nil
}

// Login godoc
// @Summary Administrator login
// @Description Authenticates the administrator and returns a JWT token. The username becomes the actor on every audit record.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if h.adminPasswordHash == "" {
		logger.Warn("Login attempted while no administrator password is configured")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Login is disabled"})
		return
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.adminUsername)) == 1
	passwordOK := utils.CheckPasswordHash(req.Password, h.adminPasswordHash)
	if !usernameOK || !passwordOK {
		logger.Warn("Failed login attempt", slog.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
		return
	}

	signed, err := utils.GenerateJWT(h.adminUsername, h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	logger.Info("Administrator logged in", slog.String("username", h.adminUsername))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: signed, ExpiresIn: int64(h.jwtDuration.Seconds())})
}
