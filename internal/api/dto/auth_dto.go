package dto

import "time"

// LoginRequest payload for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest payload for registration. Only the attribute group matching
// Role is kept.
type SignUpRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	CompanyName string `json:"companyName"`
	CompanyRole string `json:"companyRole"`
	CollegeName string `json:"collegeName"`
	Branch      string `json:"branch"`
	CollegeID   string `json:"collegeId"`
}

// SocialLoginRequest payload carrying a provider identity token.
type SocialLoginRequest struct {
	Provider string `json:"provider"`
	Token    string `json:"token"`
}

// ForgotPasswordRequest payload for initiating reset.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest payload for completing reset.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// JWTAuthResponse is returned by login and social login.
type JWTAuthResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// APIResponse is the success/message envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorDetails is the body rendered for failed requests.
type ErrorDetails struct {
	Timestamp time.Time      `json:"timestamp"`
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   string         `json:"details"`
	Fields    map[string]any `json:"fields,omitempty"`
}
