package store

import (
	"context"
	"fmt"

	"medisecure/internal/database"
	"medisecure/internal/model"
)

const requestColumns = `id, requester_id, donor_id, status, created_at, updated_at`

func scanRequest(row interface{ Scan(...any) error }, r *model.Request) error {
	return row.Scan(
		&r.ID,
		&r.RequesterID,
		&r.DonorID,
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
}

// InsertRequest 新請求一律為 pending
func InsertRequest(ctx context.Context, db database.Querier, requesterID, donorID int) (*model.Request, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO requests (requester_id, donor_id, status)
		 VALUES ($1, $2, 'pending')
		 RETURNING `+requestColumns,
		requesterID,
		donorID,
	)
	r := &model.Request{}
	if err := scanRequest(row, r); err != nil {
		return nil, fmt.Errorf("InsertRequest: %w", database.Classify(err))
	}
	return r, nil
}

// GetRequestForUpdate locks the row until the surrounding transaction ends.
func GetRequestForUpdate(ctx context.Context, db database.Querier, requestID int) (*model.Request, error) {
	row := db.QueryRow(ctx,
		`SELECT `+requestColumns+`
		 FROM requests WHERE id = $1
		 FOR UPDATE`,
		requestID,
	)
	r := &model.Request{}
	if err := scanRequest(row, r); err != nil {
		return nil, fmt.Errorf("GetRequestForUpdate: %w", database.Classify(err))
	}
	return r, nil
}

func UpdateRequestStatus(ctx context.Context, db database.Querier, requestID int, status model.RequestStatus) (*model.Request, error) {
	row := db.QueryRow(ctx,
		`UPDATE requests
		 SET status = $1, updated_at = now()
		 WHERE id = $2
		 RETURNING `+requestColumns,
		status,
		requestID,
	)
	r := &model.Request{}
	if err := scanRequest(row, r); err != nil {
		return nil, fmt.Errorf("UpdateRequestStatus: %w", database.Classify(err))
	}
	return r, nil
}

// ListDonorInbox 捐血者收到的請求，依 id 排序
func ListDonorInbox(ctx context.Context, db database.Querier, donorID int, status model.RequestStatus) ([]model.DonorInboxItem, error) {
	rows, err := db.Query(ctx,
		`SELECT r.id, u.name, u.contact_no, r.status, r.created_at
		 FROM requests r
		 JOIN users u ON u.id = r.requester_id
		 WHERE r.donor_id = $1 AND r.status = $2
		 ORDER BY r.id`,
		donorID,
		status,
	)
	if err != nil {
		return nil, fmt.Errorf("ListDonorInbox: %w", err)
	}
	defer rows.Close()

	items := []model.DonorInboxItem{}
	for rows.Next() {
		var it model.DonorInboxItem
		if err := rows.Scan(&it.ID, &it.RequesterName, &it.RequesterContact, &it.Status, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListDonorInbox: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListDonorInbox: %w", err)
	}
	return items, nil
}

// ListSentRequests 受血者送出的所有請求；捐血者沒有 detail 時血型為空字串
func ListSentRequests(ctx context.Context, db database.Querier, requesterID int) ([]model.SentRequestItem, error) {
	rows, err := db.Query(ctx,
		`SELECT r.id, u.name, u.contact_no, COALESCE(d.blood_group, ''), r.status, r.created_at
		 FROM requests r
		 JOIN users u ON u.id = r.donor_id
		 LEFT JOIN donor_details d ON d.user_id = r.donor_id
		 WHERE r.requester_id = $1
		 ORDER BY r.id`,
		requesterID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListSentRequests: %w", err)
	}
	defer rows.Close()

	items := []model.SentRequestItem{}
	for rows.Next() {
		var it model.SentRequestItem
		if err := rows.Scan(&it.ID, &it.DonorName, &it.DonorContact, &it.BloodGroup, &it.Status, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListSentRequests: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListSentRequests: %w", err)
	}
	return items, nil
}
