package req

type JoinFacultyRequest struct {
	UserID  string `json:"userId" validate:"required"`
	Faculty string `json:"faculty" validate:"required,faculty"`
}

type GroupMessageRequest struct {
	UserID  string `json:"userId" validate:"required"`
	Faculty string `json:"faculty" validate:"required,faculty"`
	Message string `json:"message" validate:"required,max=5000"`
}

type JoinPrivateChatRequest struct {
	UserID       string `json:"userId" validate:"required"`
	TargetUserID string `json:"targetUserId" validate:"required,nefield=UserID"`
}

type PrivateMessageRequest struct {
	UserID       string `json:"userId" validate:"required"`
	TargetUserID string `json:"targetUserId" validate:"required,nefield=UserID"`
	Message      string `json:"message" validate:"required,max=5000"`
}
