package store

import (
	"context"
	"fmt"

	"medisecure/internal/database"
	"medisecure/internal/model"
)

// CreateDonorDetail 註冊時只寫入血型，其餘欄位留 NULL
func CreateDonorDetail(ctx context.Context, db database.Querier, d model.DonorDetail) error {
	_, err := db.Exec(ctx,
		`INSERT INTO donor_details (user_id, blood_group, location, age, last_donation_months)
		 VALUES ($1, $2, $3, $4, $5)`,
		d.UserID,
		d.BloodGroup,
		d.Location,
		d.Age,
		d.LastDonationMonths,
	)
	if err != nil {
		return fmt.Errorf("CreateDonorDetail: %w", database.Classify(err))
	}
	return nil
}

// UpsertDonorDetail writes the full profile, creating the detail row when a
// donor somehow lacks one.
func UpsertDonorDetail(ctx context.Context, db database.Querier, d model.DonorDetail) error {
	_, err := db.Exec(ctx,
		`INSERT INTO donor_details (user_id, blood_group, location, age, last_donation_months)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE
		 SET blood_group = EXCLUDED.blood_group,
		     location = EXCLUDED.location,
		     age = EXCLUDED.age,
		     last_donation_months = EXCLUDED.last_donation_months`,
		d.UserID,
		d.BloodGroup,
		d.Location,
		d.Age,
		d.LastDonationMonths,
	)
	if err != nil {
		return fmt.Errorf("UpsertDonorDetail: %w", database.Classify(err))
	}
	return nil
}

func GetDonorProfile(ctx context.Context, db database.Querier, userID int) (*model.DonorProfile, error) {
	row := db.QueryRow(ctx,
		`SELECT u.name, u.email, u.contact_no,
		        u.id, COALESCE(d.blood_group, ''), d.location, d.age, d.last_donation_months
		 FROM users u
		 LEFT JOIN donor_details d ON d.user_id = u.id
		 WHERE u.id = $1 AND u.user_type = 'donor'`,
		userID,
	)
	p := &model.DonorProfile{}
	if err := row.Scan(
		&p.Name,
		&p.Email,
		&p.ContactNo,
		&p.UserID,
		&p.BloodGroup,
		&p.Location,
		&p.Age,
		&p.LastDonationMonths,
	); err != nil {
		return nil, fmt.Errorf("GetDonorProfile: %w", database.Classify(err))
	}
	return p, nil
}

// ListDonors 捐血者清單；bloodGroup 為空時不過濾
func ListDonors(ctx context.Context, db database.Querier, bloodGroup string) ([]model.DonorListing, error) {
	rows, err := db.Query(ctx,
		`SELECT u.id, u.name, d.blood_group, d.location
		 FROM users u
		 JOIN donor_details d ON d.user_id = u.id
		 WHERE ($1::text = '' OR d.blood_group = $1)
		 ORDER BY u.id`,
		bloodGroup,
	)
	if err != nil {
		return nil, fmt.Errorf("ListDonors: %w", err)
	}
	defer rows.Close()

	donors := []model.DonorListing{}
	for rows.Next() {
		var d model.DonorListing
		if err := rows.Scan(&d.ID, &d.Name, &d.BloodGroup, &d.Location); err != nil {
			return nil, fmt.Errorf("ListDonors: %w", err)
		}
		donors = append(donors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListDonors: %w", err)
	}
	return donors, nil
}
