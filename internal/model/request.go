// File: internal/model/request.go
package model

import "time"

// RequestStatus pending is the only non-terminal state.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// Terminal reports whether no further transition is allowed.
func (s RequestStatus) Terminal() bool {
	return s == RequestAccepted || s == RequestRejected
}

// ParseAction accepts only the two resolving actions a donor may take.
func ParseAction(action string) (RequestStatus, bool) {
	switch RequestStatus(action) {
	case RequestAccepted, RequestRejected:
		return RequestStatus(action), true
	}
	return "", false
}

type Request struct {
	ID          int           `db:"id" json:"id"`
	RequesterID int           `db:"requester_id" json:"requester_id"`
	DonorID     int           `db:"donor_id" json:"donor_id"`
	Status      RequestStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// DonorInboxItem 捐血者看到的請求 (joined with requester)
type DonorInboxItem struct {
	ID               int           `json:"id"`
	RequesterName    string        `json:"requester_name"`
	RequesterContact string        `json:"requester_contact"`
	Status           RequestStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
}

// SentRequestItem 受血者送出的請求 (joined with donor)
type SentRequestItem struct {
	ID           int           `json:"id"`
	DonorName    string        `json:"donor_name"`
	DonorContact string        `json:"donor_contact"`
	BloodGroup   string        `json:"blood_group"`
	Status       RequestStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}
