// Package booths implements the operator-facing read and update
// operations over the fleet.
package booths

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"booth-status-backend/internal/apperr"
	"booth-status-backend/internal/model"
	"booth-status-backend/internal/schedule"
	"booth-status-backend/internal/status"
	"booth-status-backend/internal/store"
)

// View is the dashboard representation of one booth, combining stored
// metadata with the status derived at request time.
type View struct {
	ID                     string                   `json:"id"`
	BoothID                string                   `json:"boothId"`
	Name                   string                   `json:"name"`
	Status                 string                   `json:"status"`
	Mode                   string                   `json:"mode"`
	Timezone               string                   `json:"timezone"`
	OperatingHours         *schedule.OperatingHours `json:"operatingHours"`
	LastPing               time.Time                `json:"lastPing"`
	MinutesSinceLastPing   int                      `json:"minutesSinceLastPing"`
	IsMaintenance          bool                     `json:"isMaintenance"`
	IsWithinOperatingHours bool                     `json:"isWithinOperatingHours"`
	HasIssue               bool                     `json:"hasIssue"`
	Message                string                   `json:"message"`
}

// Service derives booth views and applies operator edits.
type Service struct {
	store          store.Store
	staleThreshold time.Duration
	log            *zap.SugaredLogger
	now            func() time.Time
}

// NewService creates the booths service. The threshold is the on-demand
// staleness threshold, which is intentionally tighter than the sweep's.
func NewService(s store.Store, staleThreshold time.Duration, log *zap.SugaredLogger) *Service {
	return &Service{
		store:          s,
		staleThreshold: staleThreshold,
		log:            log,
		now:            time.Now,
	}
}

// List returns every booth with its derived status, ordered by most
// recently seen.
func (s *Service) List(ctx context.Context) ([]View, error) {
	booths, err := s.store.ListBooths(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]View, 0, len(booths))
	for _, booth := range booths {
		views = append(views, s.buildView(ctx, booth, now))
	}
	return views, nil
}

func (s *Service) buildView(ctx context.Context, booth model.Booth, now time.Time) View {
	latest, err := s.store.LatestHealthLog(ctx, booth.ID)
	if err != nil {
		s.log.Errorw("failed to load latest health log", "booth", booth.BoothID, "error", err)
	}

	var latestStatus, latestMessage, latestMode string
	if latest != nil {
		latestStatus = latest.Status
		latestMessage = latest.Message
		latestMode = latest.Mode()
	}

	hours, parseErr := schedule.Parse(booth.OperatingHours)
	if parseErr != nil {
		// Malformed stored data fails open: the booth counts as always on.
		hours = nil
	}

	derived := status.Resolve(status.Input{
		LastPing:     booth.LastPing,
		LatestStatus: latestStatus,
		LatestMode:   latestMode,
		WithinHours:  schedule.IsWithin(hours, booth.Timezone, now),
		Threshold:    s.staleThreshold,
	}, now)

	if hours == nil {
		hours = &schedule.OperatingHours{Enabled: false, Schedule: []schedule.Entry{}}
	}

	return View{
		ID:                     booth.ID,
		BoothID:                booth.BoothID,
		Name:                   booth.Name,
		Status:                 derived.Status,
		Mode:                   derived.Mode,
		Timezone:               booth.Timezone,
		OperatingHours:         hours,
		LastPing:               booth.LastPing,
		MinutesSinceLastPing:   derived.MinutesSinceLastPing,
		IsMaintenance:          derived.Mode == status.ModeMaintenance,
		IsWithinOperatingHours: derived.WithinOperatingHours,
		HasIssue:               derived.HasIssue(),
		Message:                latestMessage,
	}
}

// Create registers a booth explicitly, ahead of its first ping.
func (s *Service) Create(ctx context.Context, boothID, name string) (model.Booth, error) {
	if boothID == "" {
		return model.Booth{}, fmt.Errorf("boothId is required: %w", apperr.ErrValidation)
	}
	return s.store.CreateBooth(ctx, boothID, name)
}

// Rename updates a booth's display name.
func (s *Service) Rename(ctx context.Context, id, name string) (model.Booth, error) {
	return s.store.UpdateBoothName(ctx, id, name)
}

// SetOperatingHours replaces a booth's weekly schedule.
func (s *Service) SetOperatingHours(ctx context.Context, id string, hours schedule.OperatingHours) (model.Booth, error) {
	serialized, err := hours.Serialize()
	if err != nil {
		return model.Booth{}, fmt.Errorf("invalid operating hours: %w", apperr.ErrValidation)
	}
	return s.store.UpdateBoothOperatingHours(ctx, id, serialized)
}
