package req

type TargetUserRequest struct {
	TargetUserID string `json:"targetUserId" validate:"required"`
}

type ReportUserRequest struct {
	ReportedUserID string `json:"reportedUserId" validate:"required"`
	Reason         string `json:"reason" validate:"required,max=1000"`
}
