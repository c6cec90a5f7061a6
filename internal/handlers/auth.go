package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/ananyapurwar/ALGOTRACK/internal/auth"
	"github.com/ananyapurwar/ALGOTRACK/internal/dto"
	"github.com/ananyapurwar/ALGOTRACK/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, register, handle update, logout and the
// current-user probe.
type AuthHandler struct {
	sessions *auth.Store
	userSvc  *service.UserService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(sessions *auth.Store, userSvc *service.UserService) *AuthHandler {
	return &AuthHandler{sessions: sessions, userSvc: userSvc}
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	user, err := h.userSvc.ValidateCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		log.Printf("login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	if !h.startSession(c, auth.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		Handle:   user.Handle,
		IsAdmin:  user.IsAdmin,
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "isAdmin": user.IsAdmin})
}

// Register godoc
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Credentials"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	user, err := h.userSvc.Register(c.Request.Context(), req.Username, req.Password, req.Handle)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}
		log.Printf("register: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	if !h.startSession(c, auth.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		Handle:   user.Handle,
		IsAdmin:  user.IsAdmin,
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateHandle godoc
// @Summary      Update display handle
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateHandleRequest  true  "New handle"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/update-handle [post]
func (h *AuthHandler) UpdateHandle(c *gin.Context) {
	var req dto.UpdateHandleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "handle is required"})
		return
	}
	user, ok := auth.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}
	if err := h.userSvc.UpdateHandle(c.Request.Context(), user.ID, req.Handle); err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "handle is required"})
			return
		}
		log.Printf("update handle: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update handle"})
		return
	}
	// Keep the session snapshot in step with the store.
	sessionID, _ := c.Cookie(auth.SessionCookieName)
	if err := h.sessions.SetHandle(c.Request.Context(), sessionID, req.Handle); err != nil {
		log.Printf("update session handle: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update handle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Success      302
// @Failure      500   {object}  map[string]string
// @Router       /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(auth.SessionCookieName)
	if err == nil && sessionID != "" {
		if err := h.sessions.Delete(c.Request.Context(), sessionID); err != nil {
			log.Printf("logout: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error logging out"})
			return
		}
	}
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// CurrentUser godoc
// @Summary      Current session user
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.CurrentUserResponse
// @Router       /api/user [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	sessionID, err := c.Cookie(auth.SessionCookieName)
	if err != nil || sessionID == "" {
		c.JSON(http.StatusOK, dto.CurrentUserResponse{IsAuthenticated: false})
		return
	}
	user, ok, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil || !ok {
		c.JSON(http.StatusOK, dto.CurrentUserResponse{IsAuthenticated: false})
		return
	}
	c.JSON(http.StatusOK, dto.CurrentUserResponse{
		IsAuthenticated: true,
		User: &dto.SessionUserResponse{
			ID:       user.ID,
			Username: user.Username,
			Handle:   user.Handle,
			IsAdmin:  user.IsAdmin,
		},
	})
}

// startSession creates a session for the snapshot and sets the cookie.
// On failure it writes a 500 and returns false.
func (h *AuthHandler) startSession(c *gin.Context, user auth.SessionUser) bool {
	sessionID, err := h.sessions.Create(c.Request.Context(), user)
	if err != nil {
		log.Printf("create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return false
	}
	c.SetCookie(auth.SessionCookieName, sessionID, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	return true
}
