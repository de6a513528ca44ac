package handlers

import (
	"errors"
	"net/http"

	"UserAPI/internal/auth"
	"UserAPI/internal/dto"
	"UserAPI/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login and the token-gated probe route.
type AuthHandler struct {
	userSvc *service.UserService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(userSvc *service.UserService) *AuthHandler {
	return &AuthHandler{userSvc: userSvc}
}

// Login godoc
// @Summary      Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := h.userSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}

// TestUser godoc
// @Summary      Probe route for a valid access token
// @Tags         auth
// @Produce      json
// @Param        X-ACCESS-TOKEN  header  string  true  "Access token"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/test-user [get]
func (h *AuthHandler) TestUser(c *gin.Context) {
	// Identity was injected by the middleware; the token is not re-verified.
	c.JSON(http.StatusOK, gin.H{"user_id": auth.UserIDFromContext(c)})
}
