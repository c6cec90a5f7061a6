package dto

import "time"

// LoginRequest is the JSON body for POST /api/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the JSON body for POST /api/register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=1,max=120"`
	Password string `json:"password" binding:"required,min=1"`
	Handle   string `json:"handle"`
}

// UpdateHandleRequest is the JSON body for POST /api/update-handle.
type UpdateHandleRequest struct {
	Handle string `json:"handle" binding:"required"`
}

// SessionUserResponse is the user object returned by GET /api/user.
type SessionUserResponse struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Handle   *string `json:"handle"`
	IsAdmin  bool    `json:"isAdmin"`
}

// CurrentUserResponse is the body of GET /api/user.
type CurrentUserResponse struct {
	IsAuthenticated bool                 `json:"isAuthenticated"`
	User            *SessionUserResponse `json:"user,omitempty"`
}

// AdminUserResponse is one row of GET /api/admin/users.
type AdminUserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Handle    *string   `json:"handle"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminUserCredentialResponse is one row of GET /api/admin/user-credentials.
// It additionally exposes the stored password digest; kept as an existing
// contract of the admin surface.
type AdminUserCredentialResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Handle    *string   `json:"handle"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}
