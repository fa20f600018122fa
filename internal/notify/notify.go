// Package notify tells a donor about a new blood request: a realtime push to
// the donor's room plus an email. Neither failure reaches the caller.
package notify

import (
	"context"
	"fmt"
	"strconv"

	"medisecure/internal/apperr"
	"medisecure/internal/mailer"
	"medisecure/internal/metrics"
	"medisecure/internal/realtime"
	"medisecure/internal/worker"

	"github.com/sirupsen/logrus"
)

const (
	EventNewRequest = "new_request"
	EmailSubject    = "New Blood Request on MediSecure Portal"
)

// Notice 新請求通知所需的資料
type Notice struct {
	DonorID       int
	DonorName     string
	DonorEmail    string
	RequesterName string
}

type Dispatcher struct {
	emitter realtime.Emitter
	sender  mailer.Sender
	pool    worker.Pool
	logger  logrus.FieldLogger
}

// NewDispatcher pool 為 nil 時同步寄信
func NewDispatcher(emitter realtime.Emitter, sender mailer.Sender, pool worker.Pool, logger logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{emitter: emitter, sender: sender, pool: pool, logger: logger}
}

// PushMessage is the text shown in the donor's browser.
func PushMessage(requesterName string) string {
	return fmt.Sprintf("You have a new blood request from %s!", requesterName)
}

func emailBody(donorName, requesterName string) string {
	return fmt.Sprintf("Hello %s,\n\n"+
		"You have received a new blood request from %s. "+
		"Please log in to your MediSecure Portal dashboard to view and respond to the request.\n\n"+
		"Thank you!", donorName, requesterName)
}

// NewRequest must only be called once the request is committed.
func (d *Dispatcher) NewRequest(ctx context.Context, n Notice) {
	log := d.logger.WithFields(logrus.Fields{"donor_id": n.DonorID, "requester": n.RequesterName})

	payload := map[string]string{"message": PushMessage(n.RequesterName)}
	if err := d.emitter.Emit(ctx, strconv.Itoa(n.DonorID), EventNewRequest, payload); err != nil {
		metrics.RecordNotification("realtime", "failed")
		log.WithError(err).Warn("realtime push failed")
	} else {
		metrics.RecordNotification("realtime", "sent")
	}

	msg := mailer.Message{
		To:      n.DonorEmail,
		Subject: EmailSubject,
		Body:    emailBody(n.DonorName, n.RequesterName),
	}
	if d.pool != nil {
		// 請求已結束也要寄出
		bg := context.WithoutCancel(ctx)
		d.pool.Submit(func() { _ = d.sendEmail(bg, msg, log) })
		return
	}
	_ = d.sendEmail(ctx, msg, log)
}

func (d *Dispatcher) sendEmail(ctx context.Context, msg mailer.Message, log logrus.FieldLogger) error {
	if err := d.sender.Send(ctx, msg); err != nil {
		err = fmt.Errorf("%w: %v", apperr.ErrNotificationDelivery, err)
		metrics.RecordNotification("email", "failed")
		log.WithError(err).Warn("error sending email")
		return err
	}
	metrics.RecordNotification("email", "sent")
	return nil
}
