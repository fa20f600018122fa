// File: internal/model/user.go
package model

import "time"

// UserType 使用者角色
type UserType string

const (
	UserTypeDonor    UserType = "donor"
	UserTypeReceiver UserType = "receiver"
	UserTypeHospital UserType = "hospital"
	UserTypeClub     UserType = "club"
)

// Valid reports whether t is one of the four portal roles.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeDonor, UserTypeReceiver, UserTypeHospital, UserTypeClub:
		return true
	}
	return false
}

// RequiresRegistrationID hospitals and clubs sign up with a registration id.
func (t UserType) RequiresRegistrationID() bool {
	return t == UserTypeHospital || t == UserTypeClub
}

type User struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password" json:"-"`
	ContactNo    string    `db:"contact_no" json:"contact_no"`
	UserType     UserType  `db:"user_type" json:"user_type"`
	HospitalID   *string   `db:"hospital_id" json:"hospital_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
