package entity

import "campus-chat/enum"

type Message struct {
	BaseEntity    `bson:",inline"`
	SenderID      string           `json:"senderId" gorm:"index;type:varchar(64)" bson:"sender_id"`
	SenderName    string           `json:"senderName" gorm:"type:varchar(255)" bson:"sender_name"`
	SenderFaculty string           `json:"senderFaculty" gorm:"type:varchar(100)" bson:"sender_faculty"`
	SenderDegree  string           `json:"senderDegree" gorm:"type:varchar(50)" bson:"sender_degree"`
	SenderCourse  int              `json:"senderCourse" bson:"sender_course"`
	SenderPicture string           `json:"senderPicture,omitempty" gorm:"type:text" bson:"sender_picture,omitempty"`
	Type          enum.MessageType `json:"type" gorm:"type:varchar(7)" bson:"type"`
	Faculty       string           `json:"faculty,omitempty" gorm:"type:varchar(100)" bson:"faculty,omitempty"`
	TargetUserID  string           `json:"targetUserId,omitempty" gorm:"type:varchar(64)" bson:"target_user_id,omitempty"`
	Room          string           `json:"room" gorm:"index;type:varchar(255)" bson:"room"`
	Content       string           `json:"content" gorm:"type:text" bson:"content"`
}
