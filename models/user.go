package models

// User is the account backend's view of a user. It is never persisted by
// this layer.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// UserSession carries the opaque bearer token issued by the account backend.
type UserSession struct {
	AccessToken string `json:"access_token"`
}

// AuthResponse is the account backend's response to register and login.
type AuthResponse struct {
	Message string       `json:"message"`
	User    User         `json:"user"`
	Session *UserSession `json:"session,omitempty"`
}

// Credentials is the browser-supplied register/login payload, forwarded to
// the account backend as-is.
type Credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}
