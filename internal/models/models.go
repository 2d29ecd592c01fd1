package models

import "time"

// ============================================
// Request DTOs
// ============================================

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest carries a sparse update: only non-nil fields are applied.
type UpdateUserRequest struct {
	FullName *string `json:"fullname"`
	Password *string `json:"password"`
}

type LocalLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Country string `json:"country" binding:"required"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Country *string `json:"country"`
}

type CreateProjectRequest struct {
	PMNames      string `json:"pm_names" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Thumbnail    string `json:"thumbnail" binding:"required"`
	Client       string `json:"client" binding:"required"`
	Type         string `json:"type" binding:"required"`
	URL          string `json:"url" binding:"required"`
	BugReportURL string `json:"bug_report_url" binding:"required"`
}

type UpdateProjectRequest struct {
	PMNames      *string `json:"pm_names"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Thumbnail    *string `json:"thumbnail"`
	Client       *string `json:"client"`
	Type         *string `json:"type"`
	URL          *string `json:"url"`
	BugReportURL *string `json:"bug_report_url"`
}

// ============================================
// Response DTOs
// ============================================

type UserResponse struct {
	Email     string    `json:"email"`
	FullName  string    `json:"fullname"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListItem is the compact shape returned by the list endpoint.
type UserListItem struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type ClientResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type ProjectResponse struct {
	ID           int64  `json:"id"`
	PMNames      string `json:"pm_names"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	Client       string `json:"client"`
	Type         string `json:"type"`
	URL          string `json:"url"`
	BugReportURL string `json:"bug_report_url"`
}

type AuthResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
