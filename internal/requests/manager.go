// Package requests owns the blood request lifecycle: creation by a receiver,
// resolution by the addressed donor, and the dashboard listings.
package requests

import (
	"context"
	"fmt"
	"time"

	"medisecure/internal/apperr"
	"medisecure/internal/cache"
	"medisecure/internal/database"
	"medisecure/internal/metrics"
	"medisecure/internal/model"
	"medisecure/internal/notify"
	"medisecure/internal/session"
	"medisecure/internal/store"

	"github.com/sirupsen/logrus"
)

// Notifier is called once per committed request.
type Notifier interface {
	NewRequest(ctx context.Context, n notify.Notice)
}

type Manager struct {
	db       database.DB
	cache    cache.Cache
	notifier Notifier
	donorTTL time.Duration
	logger   logrus.FieldLogger
}

// NewManager donorTTL <= 0 關閉捐血者清單快取
func NewManager(db database.DB, c cache.Cache, notifier Notifier, donorTTL time.Duration, logger logrus.FieldLogger) *Manager {
	return &Manager{db: db, cache: c, notifier: notifier, donorTTL: donorTTL, logger: logger}
}

// Create inserts a pending request from who to donorID and notifies the donor
// after commit. Nothing is written when the donor does not exist.
func (m *Manager) Create(ctx context.Context, who session.Identity, donorID int) (*model.Request, error) {
	if who.UserType != model.UserTypeReceiver {
		return nil, fmt.Errorf("%w: only receivers may request blood", apperr.ErrAuthorizationDenied)
	}

	var (
		req       *model.Request
		donor     *model.User
		requester *model.User
	)
	err := database.WithTx(ctx, m.db, func(q database.Querier) error {
		var err error
		if donor, err = store.GetUserByID(ctx, q, donorID); err != nil {
			return err
		}
		if requester, err = store.GetUserByID(ctx, q, who.UserID); err != nil {
			return err
		}
		req, err = store.InsertRequest(ctx, q, who.UserID, donorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordRequestCreated()

	m.notifier.NewRequest(ctx, notify.Notice{
		DonorID:       donor.ID,
		DonorName:     donor.Name,
		DonorEmail:    donor.Email,
		RequesterName: requester.Name,
	})
	return req, nil
}

// Transition resolves a pending request. Only the addressed donor may do it,
// and only once.
func (m *Manager) Transition(ctx context.Context, who session.Identity, requestID int, action string) (*model.Request, error) {
	status, ok := model.ParseAction(action)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperr.ErrInvalidAction, action)
	}
	if who.UserType != model.UserTypeDonor {
		return nil, fmt.Errorf("%w: only donors may answer requests", apperr.ErrAuthorizationDenied)
	}

	var updated *model.Request
	err := database.WithTx(ctx, m.db, func(q database.Querier) error {
		r, err := store.GetRequestForUpdate(ctx, q, requestID)
		if err != nil {
			return err
		}
		if r.DonorID != who.UserID {
			return fmt.Errorf("%w: request %d is addressed to another donor", apperr.ErrAuthorizationDenied, requestID)
		}
		if r.Status != model.RequestPending {
			return fmt.Errorf("%w: request %d is already %s", apperr.ErrInvalidTransition, requestID, r.Status)
		}
		updated, err = store.UpdateRequestStatus(ctx, q, requestID, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordTransition(string(status))
	return updated, nil
}

func (m *Manager) ListForDonor(ctx context.Context, donorID int, status model.RequestStatus) ([]model.DonorInboxItem, error) {
	return store.ListDonorInbox(ctx, m.db, donorID, status)
}

func (m *Manager) ListForReceiver(ctx context.Context, requesterID int) ([]model.SentRequestItem, error) {
	return store.ListSentRequests(ctx, m.db, requesterID)
}
