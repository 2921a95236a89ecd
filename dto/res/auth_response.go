package res

import "time"

type QuestionResponse struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
}

type RegisterResponse struct {
	Questions []QuestionResponse `json:"questions"`
}

type LoginResponse struct {
	Token        string        `json:"token"`
	ExpiresAt    time.Time     `json:"expiresAt"`
	User         *UserResponse `json:"user,omitempty"`
	IsSuperAdmin bool          `json:"isSuperAdmin"`
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Type          string `json:"type,omitempty"`
	IsSuperAdmin  bool   `json:"isSuperAdmin,omitempty"`
}
