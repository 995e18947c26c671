package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neoenginex/gemsutopia/internal/pkg/config"
	"github.com/neoenginex/gemsutopia/pkg/response"
	"github.com/neoenginex/gemsutopia/pkg/utils"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an allowlisted admin and issues the token both in
// the body and as an httpOnly cookie fallback.
func (h *AuthHandler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	cfg := config.GlobalConfig
	passwordOK := subtle.ConstantTimeCompare([]byte(input.Password), []byte(cfg.Admin.Password)) == 1
	if !passwordOK || !cfg.IsAdminEmail(input.Email) {
		response.Error(c, http.StatusUnauthorized, response.ErrAuthFailed, "Invalid credentials")
		return
	}

	token, expiresAt, err := utils.GenerateAdminToken(input.Email)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Could not issue token")
		return
	}

	maxAge := int(cfg.JWT.Expire * 3600)
	c.SetCookie("admin-token", token, maxAge, "/", "", true, true)

	response.Success(c, gin.H{"token": token, "expiresAt": expiresAt})
}

// Logout clears the cookie transport.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("admin-token", "", -1, "/", "", true, true)
	response.Success(c, "Logged out")
}
