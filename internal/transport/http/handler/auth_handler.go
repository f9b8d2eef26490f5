package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"motomap-api/internal/service"
	"motomap-api/internal/transport/http/response"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

type loginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
}

// Login issues a bearer token valid for the configured window (2h).
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteBindingError(c, err)
		return
	}
	token, err := h.svc.Login(c.Request.Context(), req.Username, req.Password, c.ClientIP())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
