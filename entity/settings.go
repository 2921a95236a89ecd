package entity

import (
	"time"

	"campus-chat/enum"
)

const SettingsID = "general"

// Settings is the singleton chat configuration edited by admins.
type Settings struct {
	ID                   string    `json:"id" gorm:"primaryKey;type:varchar(20)" bson:"_id"`
	Rules                string    `json:"rules" gorm:"type:text" bson:"rules"`
	TopicOfTheDay        string    `json:"topicOfTheDay" gorm:"type:text" bson:"topic_of_the_day"`
	FilterWords          []string  `json:"filterWords" gorm:"serializer:json;type:text" bson:"filter_words"`
	GroupMessageExpiry   float64   `json:"groupMessageExpiry" bson:"group_message_expiry"`
	PrivateMessageExpiry float64   `json:"privateMessageExpiry" bson:"private_message_expiry"`
	UpdatedAt            time.Time `json:"updatedAt" bson:"updated_at"`
}

func DefaultSettings() Settings {
	return Settings{
		ID: SettingsID,
		Rules: "Bakı Dövlət Universiteti Chat Qaydaları\n\n" +
			"1. Hörmətli ünsiyyət\n" +
			"2. Spam göndərməyin\n" +
			"3. Şəxsi məlumatları paylaşmayın\n" +
			"4. Akademik etikaya riayət edin",
		TopicOfTheDay:        "Xoş gəlmisiniz! BSU Chat-a",
		FilterWords:          []string{"pis", "nalayiq"},
		GroupMessageExpiry:   24,
		PrivateMessageExpiry: 48,
	}
}

// ExpiryFor returns how long a message of the given type lives. Zero means forever.
func (settings *Settings) ExpiryFor(messageType enum.MessageType) time.Duration {
	hours := settings.GroupMessageExpiry
	if messageType == enum.MessageTypePrivate {
		hours = settings.PrivateMessageExpiry
	}
	if hours <= 0 {
		return 0
	}
	return time.Duration(hours * float64(time.Hour))
}
