package models

// RequestLoginRequest is the magic-link request payload
type RequestLoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestLoginResponse is returned after a login link was sent
type RequestLoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// VerifyLoginRequest carries a magic-link token submitted by an SPA client
type VerifyLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyLoginResponse is returned after a successful verification
type VerifyLoginResponse struct {
	Success bool           `json:"success"`
	Session *MentorSession `json:"session"`
}

// PreviewLoginRequest is the admin impersonation payload
type PreviewLoginRequest struct {
	PreviewEmail string `json:"preview_email" binding:"required,email"`
	AdminKey     string `json:"admin_key" binding:"required"`
}

// LogoutResponse acknowledges a cleared session
type LogoutResponse struct {
	Success bool `json:"success"`
}
