package entity

type Report struct {
	BaseEntity     `bson:",inline"`
	ReportedUserID string `json:"reportedUserId" gorm:"index;type:varchar(64)" bson:"reported_user_id"`
	ReporterUserID string `json:"reporterUserId" gorm:"type:varchar(64)" bson:"reporter_user_id"`
	Reason         string `json:"reason" gorm:"type:text" bson:"reason"`
}
