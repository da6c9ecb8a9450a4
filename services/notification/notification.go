package notification

import (
	"context"
	"fmt"
	"time"

	"glowbook/database/gateway"
	"glowbook/models"
	"glowbook/services/booking"
	"glowbook/services/tasks"
	"glowbook/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Reminder offsets before the appointment instant.
const (
	dayBefore  = 24 * time.Hour
	hourBefore = time.Hour
)

// Dispatcher receives booking events and is responsible for triggering
// confirmation and reminder messages. Delivery itself (push/SMS) is an
// external concern; this service records intent and schedules the
// reminder jobs.
type Dispatcher interface {
	SendBookingNotification(ctx context.Context, bk models.Booking) error
	ScheduleReminders(ctx context.Context, bk models.Booking) error
}

// ReminderEnqueuer is the slice of asynq.Client the dispatcher needs.
type ReminderEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// LogDispatcher is the default Dispatcher. Confirmation messages are
// logged (real delivery is external); reminders are queued through asynq
// so the worker fires them 24 hours and 1 hour before the appointment.
type LogDispatcher struct {
	Gateway gateway.Gateway
	Queue   ReminderEnqueuer
}

// NewLogDispatcher returns the default dispatcher. The gateway resolves
// the counterparty business name when a booking carries no snapshot;
// queue may be nil, in which case reminders are only logged.
func NewLogDispatcher(gw gateway.Gateway, queue ReminderEnqueuer) *LogDispatcher {
	return &LogDispatcher{Gateway: gw, Queue: queue}
}

// SendBookingNotification triggers the booking confirmation message.
func (d *LogDispatcher) SendBookingNotification(ctx context.Context, bk models.Booking) error {
	name := d.businessName(ctx, bk)
	utils.GetLogger().Info("notification: booking confirmation",
		zap.String("bookingID", bk.ID),
		zap.String("clientID", bk.ClientID),
		zap.String("business", name),
		zap.String("date", bk.AppointmentDate),
		zap.String("time", bk.AppointmentTime))
	return nil
}

// ScheduleReminders queues the 24-hour and 1-hour reminders for a
// booking. Reminder instants already in the past are skipped.
func (d *LogDispatcher) ScheduleReminders(ctx context.Context, bk models.Booking) error {
	logger := utils.GetLogger()

	at, err := bk.AppointmentAt()
	if err != nil {
		return fmt.Errorf("cannot schedule reminders for booking %s: %w", bk.ID, err)
	}
	name := d.businessName(ctx, bk)

	for _, offset := range []time.Duration{dayBefore, hourBefore} {
		fireAt := at.Add(-offset)
		if fireAt.Before(time.Now()) {
			continue
		}

		payload := models.ReminderPayload{
			ReminderID:   uuid.New().String(),
			BookingID:    bk.ID,
			ClientID:     bk.ClientID,
			BusinessName: name,
			FireAt:       fireAt.Format(time.RFC3339),
			Title:        "Upcoming appointment",
			Body:         reminderBody(name, bk.AppointmentTime, offset),
		}

		if d.Queue == nil {
			logger.Info("notification: reminder (no queue, log only)",
				zap.String("bookingID", bk.ID),
				zap.String("fireAt", payload.FireAt),
				zap.String("body", payload.Body))
			continue
		}

		task, opts, err := tasks.NewReminderTask(payload, fireAt)
		if err != nil {
			return fmt.Errorf("failed to build reminder task for booking %s: %w", bk.ID, err)
		}
		if _, err := d.Queue.Enqueue(task, opts...); err != nil {
			return fmt.Errorf("failed to enqueue reminder for booking %s: %w", bk.ID, err)
		}
		logger.Info("notification: reminder scheduled",
			zap.String("bookingID", bk.ID),
			zap.String("fireAt", payload.FireAt))
	}
	return nil
}

// HandleBookingEvent subscribes the dispatcher to booking events.
// Failures are logged and swallowed: persistence already succeeded and
// notification problems must not surface to the booking caller.
func (d *LogDispatcher) HandleBookingEvent(ctx context.Context, evt booking.Event) {
	if evt.Type != booking.EventBookingCreated {
		return
	}
	logger := utils.GetLogger()
	if err := d.SendBookingNotification(ctx, evt.Booking); err != nil {
		logger.Error("notification: confirmation failed",
			zap.String("bookingID", evt.Booking.ID), zap.Error(err))
	}
	if err := d.ScheduleReminders(ctx, evt.Booking); err != nil {
		logger.Error("notification: reminder scheduling failed",
			zap.String("bookingID", evt.Booking.ID), zap.Error(err))
	}
}

func (d *LogDispatcher) businessName(ctx context.Context, bk models.Booking) string {
	if bk.Business != nil && bk.Business.Name != "" {
		return bk.Business.Name
	}
	if d.Gateway == nil || bk.BusinessID == "" {
		return "the business"
	}
	rows, err := d.Gateway.Select(ctx, gateway.TableBusinesses, gateway.Filter{"id": bk.BusinessID}, nil)
	if err != nil || len(rows) == 0 {
		return "the business"
	}
	var biz models.Business
	if err := gateway.DecodeRow(rows[0], &biz); err != nil || biz.Name == "" {
		return "the business"
	}
	return biz.Name
}

func reminderBody(businessName, appointmentTime string, offset time.Duration) string {
	if offset >= dayBefore {
		return fmt.Sprintf("Your appointment at %s is tomorrow at %s.", businessName, appointmentTime)
	}
	return fmt.Sprintf("Your appointment at %s starts at %s, in about an hour.", businessName, appointmentTime)
}
