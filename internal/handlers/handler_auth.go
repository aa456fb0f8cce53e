package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ponmobiz/ponmo_books_app/internal/dto"
	"github.com/ponmobiz/ponmo_books_app/internal/middleware"
	"github.com/ponmobiz/ponmo_books_app/internal/platform/config"
	"github.com/ponmobiz/ponmo_books_app/internal/utils"
)

// AuthHandler handles owner authentication requests.
type AuthHandler struct {
	ownerUsername     string
	ownerPasswordHash string
	jwtSecret         string
	jwtDuration       time.Duration
	jwtIssuer         string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		ownerUsername:     cfg.OwnerUsername,
		ownerPasswordHash: cfg.OwnerPasswordHash,
		jwtSecret:         cfg.JWTSecret,
		jwtDuration:       cfg.JWTExpiryDuration,
		jwtIssuer:         cfg.JWTIssuer,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config) {
	h := NewAuthHandler(cfg)

	// Login attempts are rate limited per IP.
	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("5-M")
	}
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/login", middleware.RateLimit(ipLimiter), h.login)
	}
}

// login godoc
// @Summary Owner login
// @Description Authenticates the shop owner and returns a JWT access token
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Router /auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid login request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if h.ownerPasswordHash == "" {
		logger.Error("Login attempted but no owner password hash is configured")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		return
	}

	if req.Username != h.ownerUsername || !utils.CheckPasswordHash(req.Password, h.ownerPasswordHash) {
		logger.Warn("Failed login attempt", slog.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(h.ownerUsername, h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresIn: int(h.jwtDuration.Seconds()),
	})
}
