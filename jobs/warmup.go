package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fnvj/console/internal/access"
	"github.com/fnvj/console/internal/analytics"
)

// WarmupJob pre-populates the analytics cache so the first dashboard hit
// after an invalidation stays cheap.
type WarmupJob struct {
	Analytics *analytics.Service
	Accounts  *access.Service
	Logger    *slog.Logger
	clock     func() time.Time
}

// NewWarmupJob wires dependencies for the warmup handler.
func NewWarmupJob(analyticsSvc *analytics.Service, accounts *access.Service, logger *slog.Logger) *WarmupJob {
	return &WarmupJob{
		Analytics: analyticsSvc,
		Accounts:  accounts,
		Logger:    logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes analytics warmup tasks.
func (j *WarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Analytics == nil {
		return errors.New("analytics warmup: handler not configured")
	}
	var payload WarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger()
	started := j.now()
	logger.Info("starting analytics warmup")

	filters := []analytics.Filter{
		{Year: analytics.FilterAll},
		{Year: started.Format("2006")},
	}
	for _, year := range payload.Years {
		filters = append(filters, analytics.Filter{Year: year})
	}
	if payload.PerCollaborator && j.Accounts != nil {
		for _, account := range j.Accounts.ListAccounts() {
			if account.IsMaster() {
				continue
			}
			filters = append(filters, analytics.Filter{CollaboratorID: account.ID})
		}
	}

	for _, filter := range filters {
		if _, err := j.Analytics.Summary(ctx, filter); err != nil {
			logger.Error("warm summary", slog.Any("error", err))
			return err
		}
	}
	if _, err := j.Analytics.Report(ctx); err != nil {
		logger.Error("warm report", slog.Any("error", err))
		return err
	}

	logger.Info("completed analytics warmup",
		slog.Int("summaries", len(filters)),
		slog.Duration("duration", time.Since(started)))
	return nil
}

func (j *WarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskAnalyticsWarmup))
	}
	return slog.Default().With(slog.String("job", TaskAnalyticsWarmup))
}

func (j *WarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
