package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"payroll-api/internal/core/auth"
	"payroll-api/internal/service"
	"payroll-api/internal/transport/http/response"
)

type AuthHandler struct {
	users *service.UserService
	jwter *auth.JWTer
}

func NewAuthHandler(users *service.UserService, jwter *auth.JWTer) *AuthHandler {
	return &AuthHandler{users: users, jwter: jwter}
}

// Login exchanges credentials for a bearer token. The token carries the
// profile fields the dashboards decode client-side.
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.users.Authenticate(in.Email, in.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	token, err := h.jwter.Issue(u)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":          u.ID,
			"name":        u.Name,
			"email":       u.Email,
			"role":        u.Role,
			"fixedSalary": u.FixedSalary,
		},
	})
}
