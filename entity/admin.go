package entity

// Admin is a sub-admin account. The super-admin is configured, not stored.
type Admin struct {
	BaseEntity `bson:",inline"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(50)" bson:"username"`
	Password   string `json:"password" gorm:"type:varchar(255)" bson:"password"`
}
