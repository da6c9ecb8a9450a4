package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"glowbook/models"
	"glowbook/services/tasks"
	"glowbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async reminder worker in background. The
// handler fires the reminder message when its instant arrives; actual
// push/SMS delivery is handed to the external messaging pipeline and is
// represented here by the structured log record.
func InitReminderWorker(redisOpts asynq.RedisClientOpt) {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask)

	// Start async worker with retry logic.
	go func() {
		logger := utils.GetLogger()
		logger.Info("reminder worker starting")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))

				if attempts == maxAttempts {
					log.Fatal("reminder worker: max retry attempts reached")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Error("reminder worker: invalid payload", zap.Error(err))
		return err
	}

	logger.Info("reminder fired",
		zap.String("reminderID", p.ReminderID),
		zap.String("bookingID", p.BookingID),
		zap.String("clientID", p.ClientID),
		zap.String("business", p.BusinessName),
		zap.String("title", p.Title),
		zap.String("body", p.Body))
	return nil
}
