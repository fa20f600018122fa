package api

// DonorProfileRequest 捐血者資料表單
// swagger:model api.DonorProfileRequest
type DonorProfileRequest struct {
	BloodGroup   string `form:"blood_group" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-" example:"O+"`
	Location     string `form:"location" validate:"required,max=120" example:"Pune"`
	Age          int    `form:"age" validate:"required,gte=18,lte=65" example:"29"`
	LastDonation int    `form:"last_donation" validate:"gte=0,lte=600" example:"4"`
}
