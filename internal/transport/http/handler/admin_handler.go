package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"payroll-api/internal/service"
	"payroll-api/internal/transport/http/response"
)

type AdminHandler struct {
	users *service.UserService
}

func NewAdminHandler(users *service.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// List returns every account, newest first. Accountants get the same view as
// admins here: they need the employee list to accrue against.
func (h *AdminHandler) List(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) Create(c *gin.Context) {
	var in struct {
		Name        string  `json:"name" binding:"required"`
		Email       string  `json:"email" binding:"required,email"`
		Password    string  `json:"password" binding:"required"`
		Role        string  `json:"role"`
		FixedSalary float64 `json:"fixedSalary"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.users.Create(service.CreateUserInput{
		Name:        in.Name,
		Email:       in.Email,
		Password:    in.Password,
		Role:        in.Role,
		FixedSalary: in.FixedSalary,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *AdminHandler) Update(c *gin.Context) {
	var in struct {
		Name        string  `json:"name"`
		Email       string  `json:"email"`
		Role        string  `json:"role"`
		FixedSalary float64 `json:"fixedSalary"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.users.Update(c.Param("id"), service.UpdateUserInput{
		Name:        in.Name,
		Email:       in.Email,
		Role:        in.Role,
		FixedSalary: in.FixedSalary,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) ResetPassword(c *gin.Context) {
	var in struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.users.ResetPassword(c.Param("id"), in.Password); err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
