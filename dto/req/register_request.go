package req

type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=7,max=20"`
	Faculty  string `json:"faculty" validate:"required,faculty"`
	Degree   string `json:"degree" validate:"required,max=50"`
	Course   int    `json:"course" validate:"required,min=1,max=6"`
	Password string `json:"password" validate:"required,min=6"`
}

type VerificationAnswer struct {
	Question   string `json:"question" validate:"required"`
	UserAnswer string `json:"userAnswer"`
}

type VerifyRegisterRequest struct {
	RegisterRequest
	Answers []VerificationAnswer `json:"answers" validate:"required,min=1,max=3,dive"`
}
