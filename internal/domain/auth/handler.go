package auth

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"leadcrm/internal/pkg/i18n"
	"leadcrm/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, i18n.T("invalid_login_credential_error_msg"))
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Fail(c, i18n.T("invalid_login_credential_error_msg"))
			return
		}
		log.Printf("Auth@Login error=%v", err)
		response.Fail(c, i18n.T("something_went_wrong_error_msg"))
		return
	}

	response.Data(c, gin.H{
		"token": result.Token,
		"user":  result.User,
	})
}
