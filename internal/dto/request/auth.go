package request

type RegisterRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	DOB       string `json:"dob" validate:"required,dateonly"`
	Gender    string `json:"gender" validate:"required,oneof=Nam Nữ"`
	City      string `json:"city" validate:"required"`
	District  string `json:"district" validate:"required"`
	Ward      string `json:"ward" validate:"required"`
	Address   string `json:"address" validate:"required"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=6"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=9,max=15"`
	BloodType string `json:"bloodType" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
