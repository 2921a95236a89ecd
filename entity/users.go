package entity

import "slices"

type User struct {
	BaseEntity     `bson:",inline"`
	FullName       string   `json:"fullName" gorm:"type:varchar(255)" bson:"full_name"`
	Email          string   `json:"email" gorm:"uniqueIndex;type:varchar(100)" bson:"email"`
	Phone          string   `json:"phone" gorm:"uniqueIndex;type:varchar(20)" bson:"phone"`
	Faculty        string   `json:"faculty" gorm:"index;type:varchar(100)" bson:"faculty"`
	Degree         string   `json:"degree" gorm:"type:varchar(50)" bson:"degree"`
	Course         int      `json:"course" bson:"course"`
	Password       string   `json:"password" gorm:"type:varchar(255)" bson:"password"`
	ProfilePicture string   `json:"profilePicture,omitempty" gorm:"type:text" bson:"profile_picture,omitempty"`
	IsActive       bool     `json:"isActive" gorm:"not null" bson:"is_active"`
	BlockedUsers   []string `json:"blockedUsers" gorm:"serializer:json;type:text" bson:"blocked_users"`
}

func (user *User) HasBlocked(userID string) bool {
	return slices.Contains(user.BlockedUsers, userID)
}

// Block adds userID to the block list. It reports whether the list changed.
func (user *User) Block(userID string) bool {
	if user.HasBlocked(userID) {
		return false
	}
	user.BlockedUsers = append(user.BlockedUsers, userID)
	return true
}

func (user *User) Unblock(userID string) bool {
	before := len(user.BlockedUsers)
	user.BlockedUsers = slices.DeleteFunc(user.BlockedUsers, func(id string) bool {
		return id == userID
	})
	return len(user.BlockedUsers) != before
}

// Clone returns a copy that does not share the block list.
func (user User) Clone() User {
	user.BlockedUsers = slices.Clone(user.BlockedUsers)
	if user.BlockedUsers == nil {
		user.BlockedUsers = []string{}
	}
	return user
}
