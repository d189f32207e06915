// Package health implements the single write path of the system: booth
// health-ping ingestion.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"booth-status-backend/internal/apperr"
	"booth-status-backend/internal/model"
	"booth-status-backend/internal/notify"
	"booth-status-backend/internal/status"
	"booth-status-backend/internal/store"
)

// Ping is an inbound health report from a booth.
type Ping struct {
	BoothID  string         `json:"boothId"`
	Name     string         `json:"name"`
	Status   string         `json:"status"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata"`
}

// Receipt acknowledges a processed ping.
type Receipt struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Service validates and records incoming pings.
type Service struct {
	store    store.Store
	notifier notify.Notifier
	log      *zap.SugaredLogger
	now      func() time.Time
}

// NewService creates the ingestion service.
func NewService(s store.Store, notifier notify.Notifier, log *zap.SugaredLogger) *Service {
	return &Service{
		store:    s,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// ProcessPing upserts the booth, appends an immutable health log, and for
// error or warning statuses fires the immediate alert. Notification
// failure never fails the ingestion.
func (s *Service) ProcessPing(ctx context.Context, ping Ping) (Receipt, error) {
	if ping.BoothID == "" || ping.Status == "" {
		return Receipt{}, fmt.Errorf("boothId and status are required: %w", apperr.ErrValidation)
	}

	now := s.now()

	booth, err := s.store.UpsertBoothFromPing(ctx, now, store.PingRecord{
		BoothID:  ping.BoothID,
		Name:     ping.Name,
		Timezone: metadataTimezone(ping.Metadata),
	})
	if err != nil {
		return Receipt{}, err
	}

	log := model.HealthLog{
		BoothID:   booth.ID,
		Status:    ping.Status,
		Message:   ping.Message,
		Metadata:  serializeMetadata(ping.Metadata),
		CreatedAt: now,
	}
	if err := s.store.AppendHealthLog(ctx, &log); err != nil {
		return Receipt{}, err
	}

	s.log.Infow("health ping received", "booth", ping.BoothID, "status", ping.Status)

	if ping.Status == status.StatusError || ping.Status == status.StatusWarning {
		if err := s.notifier.SendHealthUpdate(ctx, notify.HealthUpdate{
			BoothID:   booth.BoothID,
			Name:      booth.Name,
			Status:    log.Status,
			Message:   log.Message,
			CreatedAt: log.CreatedAt,
		}); err != nil {
			s.log.Errorw("immediate health alert failed", "booth", ping.BoothID, "error", err)
		}
	}

	return Receipt{
		Success:   true,
		Message:   "Health ping processed",
		Timestamp: now,
	}, nil
}

// metadataTimezone pulls the optional timezone override out of the ping
// metadata. Metadata is otherwise treated as an opaque blob.
func metadataTimezone(metadata map[string]any) string {
	if metadata == nil {
		return ""
	}
	if tz, ok := metadata["timezone"].(string); ok {
		return tz
	}
	return ""
}

func serializeMetadata(metadata map[string]any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}
