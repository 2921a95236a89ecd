package res

import "time"

type MessageResponse struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	UserName           string    `json:"userName"`
	UserFaculty        string    `json:"userFaculty,omitempty"`
	UserDegree         string    `json:"userDegree,omitempty"`
	UserCourse         int       `json:"userCourse,omitempty"`
	UserProfilePicture string    `json:"userProfilePicture,omitempty"`
	Type               string    `json:"type"`
	Faculty            string    `json:"faculty,omitempty"`
	TargetUserID       string    `json:"targetUserId,omitempty"`
	Message            string    `json:"message"`
	CreatedAt          time.Time `json:"createdAt"`
}
