// File: internal/model/donor.go
package model

// DonorDetail is created at donor signup with only the blood group; the other
// columns stay NULL until the donor fills in the profile form.
type DonorDetail struct {
	UserID             int     `db:"user_id" json:"user_id"`
	BloodGroup         string  `db:"blood_group" json:"blood_group"`
	Location           *string `db:"location" json:"location,omitempty"`
	Age                *int    `db:"age" json:"age,omitempty"`
	LastDonationMonths *int    `db:"last_donation_months" json:"last_donation_months,omitempty"`
}

// DonorProfile 捐血者資料頁 (users JOIN donor_details)
type DonorProfile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	ContactNo string `json:"contact_no"`
	DonorDetail
}

// DonorListing 受血者儀表板上的捐血者清單
type DonorListing struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	BloodGroup string  `json:"blood_group"`
	Location   *string `json:"location,omitempty"`
}

// BloodGroups 表單允許的血型
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// ValidBloodGroup reports whether g is one of BloodGroups.
func ValidBloodGroup(g string) bool {
	for _, v := range BloodGroups {
		if v == g {
			return true
		}
	}
	return false
}
