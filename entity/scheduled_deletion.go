package entity

import "time"

// ScheduledDeletion records when a message has to be removed from its room.
type ScheduledDeletion struct {
	MessageID string    `json:"messageId" gorm:"primaryKey;type:varchar(64)" bson:"_id"`
	Room      string    `json:"room" gorm:"type:varchar(255)" bson:"room"`
	FireAt    time.Time `json:"fireAt" gorm:"index" bson:"fire_at"`
}
