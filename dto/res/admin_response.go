package res

import "time"

type AdminResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type SettingsResponse struct {
	Rules                string    `json:"rules"`
	TopicOfTheDay        string    `json:"topicOfTheDay"`
	FilterWords          []string  `json:"filterWords"`
	GroupMessageExpiry   float64   `json:"groupMessageExpiry"`
	PrivateMessageExpiry float64   `json:"privateMessageExpiry"`
	UpdatedAt            time.Time `json:"updatedAt"`
}
