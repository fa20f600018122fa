package api

// SignupRequest 註冊表單；hospital_id 只有醫院與捐血社團需要，blood_group 只有捐血者需要
// swagger:model api.SignupRequest
type SignupRequest struct {
	UserType   string `form:"user_type" validate:"required,oneof=donor receiver hospital club" example:"donor"`
	Name       string `form:"name" validate:"required,max=120" example:"Alice"`
	Email      string `form:"email" validate:"required,email" example:"alice@example.com"`
	Password   string `form:"password" validate:"required,min=6" example:"Secret123!"`
	ContactNo  string `form:"contact_no" validate:"required,max=32" example:"+91 98765 43210"`
	HospitalID string `form:"hospital_id" validate:"max=64" example:"HOSP-0042"`
	BloodGroup string `form:"blood_group" example:"O+"`
}
