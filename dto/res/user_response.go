package res

import "time"

type UserResponse struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Faculty        string    `json:"faculty"`
	Degree         string    `json:"degree"`
	Course         int       `json:"course"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	IsActive       bool      `json:"isActive"`
	BlockedUsers   []string  `json:"blockedUsers,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ReportedUserResponse struct {
	User        UserResponse `json:"user"`
	ReportCount int64        `json:"reportCount"`
}
