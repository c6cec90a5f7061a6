package handlers

import (
	"log"
	"net/http"

	"github.com/ananyapurwar/ALGOTRACK/internal/dto"
	"github.com/ananyapurwar/ALGOTRACK/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin user listings. Routes using it must sit
// behind auth.RequireAdmin.
type AdminHandler struct {
	userSvc *service.UserService
}

// NewAdminHandler returns a new AdminHandler.
func NewAdminHandler(userSvc *service.UserService) *AdminHandler {
	return &AdminHandler{userSvc: userSvc}
}

// ListUsers godoc
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200   {array}   dto.AdminUserResponse
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.ListUsers(c.Request.Context())
	if err != nil {
		log.Printf("list users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	out := make([]dto.AdminUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.AdminUserResponse{
			ID:        u.ID,
			Username:  u.Username,
			Handle:    u.Handle,
			IsAdmin:   u.IsAdmin,
			CreatedAt: u.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ListUserCredentials godoc
// @Summary      List users with stored password digests
// @Tags         admin
// @Produce      json
// @Success      200   {array}   dto.AdminUserCredentialResponse
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/admin/user-credentials [get]
func (h *AdminHandler) ListUserCredentials(c *gin.Context) {
	users, err := h.userSvc.ListUsers(c.Request.Context())
	if err != nil {
		log.Printf("list user credentials: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	out := make([]dto.AdminUserCredentialResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.AdminUserCredentialResponse{
			ID:        u.ID,
			Username:  u.Username,
			Password:  u.PasswordHash,
			Handle:    u.Handle,
			IsAdmin:   u.IsAdmin,
			CreatedAt: u.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}
