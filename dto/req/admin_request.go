package req

type ToggleUserStatusRequest struct {
	UserID   string `json:"userId" validate:"required"`
	IsActive *bool  `json:"isActive" validate:"required"`
}

type UpdateSettingsRequest struct {
	Rules                string   `json:"rules" validate:"max=10000"`
	TopicOfTheDay        string   `json:"topicOfTheDay" validate:"max=1000"`
	FilterWords          []string `json:"filterWords" validate:"dive,max=100"`
	GroupMessageExpiry   float64  `json:"groupMessageExpiry" validate:"min=0"`
	PrivateMessageExpiry float64  `json:"privateMessageExpiry" validate:"min=0"`
}

type CreateSubAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}
