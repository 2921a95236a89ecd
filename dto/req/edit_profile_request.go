package req

type UpdateProfileRequest struct {
	FullName string `json:"fullName" form:"fullName" validate:"required,min=2,max=100"`
	Faculty  string `json:"faculty" form:"faculty" validate:"required,faculty"`
	Degree   string `json:"degree" form:"degree" validate:"required,max=50"`
	Course   int    `json:"course" form:"course" validate:"required,min=1,max=6"`
}
