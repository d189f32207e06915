package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"booth-status-backend/internal/apperr"
	"booth-status-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// UpsertBoothFromPing creates the booth on first sight or bumps its
	// last-ping state. The reported timezone overwrites the stored one only
	// when present; an absent timezone never clears it.
	UpsertBoothFromPing(ctx context.Context, now time.Time, rec PingRecord) (model.Booth, error)
	CreateBooth(ctx context.Context, boothID, name string) (model.Booth, error)
	FindBooth(ctx context.Context, id string) (model.Booth, error)
	ListBooths(ctx context.Context) ([]model.Booth, error)
	ListStaleBooths(ctx context.Context, cutoff time.Time) ([]model.Booth, error)
	UpdateBoothName(ctx context.Context, id, name string) (model.Booth, error)
	UpdateBoothOperatingHours(ctx context.Context, id, serialized string) (model.Booth, error)

	AppendHealthLog(ctx context.Context, log *model.HealthLog) error
	LatestHealthLog(ctx context.Context, boothID string) (*model.HealthLog, error)
	ListHealthLogs(ctx context.Context, boothID string) ([]model.HealthLog, error)
	DeleteHealthLogsOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// PingRecord carries the booth-identifying fields of an ingested ping.
type PingRecord struct {
	BoothID  string
	Name     string
	Timezone string
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) UpsertBoothFromPing(ctx context.Context, now time.Time, rec PingRecord) (model.Booth, error) {
	var booth model.Booth
	err := s.db.WithContext(ctx).Where("booth_id = ?", rec.BoothID).First(&booth).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		booth = model.Booth{
			ID:       uuid.NewString(),
			BoothID:  rec.BoothID,
			Name:     rec.Name,
			Timezone: rec.Timezone,
			LastPing: now,
		}
		if err := s.db.WithContext(ctx).Create(&booth).Error; err != nil {
			return model.Booth{}, fmt.Errorf("failed to create booth %s: %w", rec.BoothID, err)
		}
		return booth, nil
	}
	if err != nil {
		return model.Booth{}, fmt.Errorf("failed to look up booth %s: %w", rec.BoothID, err)
	}

	updates := map[string]any{"last_ping": now, "updated_at": now}
	if rec.Timezone != "" {
		updates["timezone"] = rec.Timezone
	}
	if err := s.db.WithContext(ctx).Model(&model.Booth{}).Where("id = ?", booth.ID).Updates(updates).Error; err != nil {
		return model.Booth{}, fmt.Errorf("failed to update booth %s: %w", rec.BoothID, err)
	}

	booth.LastPing = now
	if rec.Timezone != "" {
		booth.Timezone = rec.Timezone
	}
	return booth, nil
}

func (s *gormStore) CreateBooth(ctx context.Context, boothID, name string) (model.Booth, error) {
	booth := model.Booth{
		ID:      uuid.NewString(),
		BoothID: boothID,
		Name:    name,
	}
	if err := s.db.WithContext(ctx).Create(&booth).Error; err != nil {
		return model.Booth{}, fmt.Errorf("failed to create booth %s: %w", boothID, err)
	}
	return booth, nil
}

func (s *gormStore) FindBooth(ctx context.Context, id string) (model.Booth, error) {
	var booth model.Booth
	err := s.db.WithContext(ctx).First(&booth, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Booth{}, fmt.Errorf("booth %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return model.Booth{}, fmt.Errorf("failed to find booth %s: %w", id, err)
	}
	return booth, nil
}

func (s *gormStore) ListBooths(ctx context.Context) ([]model.Booth, error) {
	var booths []model.Booth
	if err := s.db.WithContext(ctx).Order("last_ping DESC").Find(&booths).Error; err != nil {
		return nil, fmt.Errorf("failed to list booths: %w", err)
	}
	return booths, nil
}

func (s *gormStore) ListStaleBooths(ctx context.Context, cutoff time.Time) ([]model.Booth, error) {
	var booths []model.Booth
	if err := s.db.WithContext(ctx).Where("last_ping < ?", cutoff).Find(&booths).Error; err != nil {
		return nil, fmt.Errorf("failed to list stale booths: %w", err)
	}
	return booths, nil
}

func (s *gormStore) UpdateBoothName(ctx context.Context, id, name string) (model.Booth, error) {
	return s.updateBooth(ctx, id, map[string]any{"name": name})
}

func (s *gormStore) UpdateBoothOperatingHours(ctx context.Context, id, serialized string) (model.Booth, error) {
	return s.updateBooth(ctx, id, map[string]any{"operating_hours": serialized})
}

func (s *gormStore) updateBooth(ctx context.Context, id string, updates map[string]any) (model.Booth, error) {
	booth, err := s.FindBooth(ctx, id)
	if err != nil {
		return model.Booth{}, err
	}
	if err := s.db.WithContext(ctx).Model(&model.Booth{}).Where("id = ?", booth.ID).Updates(updates).Error; err != nil {
		return model.Booth{}, fmt.Errorf("failed to update booth %s: %w", id, err)
	}
	return s.FindBooth(ctx, booth.ID)
}

func (s *gormStore) AppendHealthLog(ctx context.Context, log *model.HealthLog) error {
	if err := s.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to append health log for booth %s: %w", log.BoothID, err)
	}
	return nil
}

// LatestHealthLog returns the newest log for the booth, or nil when the
// booth has no retained history.
func (s *gormStore) LatestHealthLog(ctx context.Context, boothID string) (*model.HealthLog, error) {
	var log model.HealthLog
	err := s.db.WithContext(ctx).
		Where("booth_id = ?", boothID).
		Order("created_at DESC").
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest health log for booth %s: %w", boothID, err)
	}
	return &log, nil
}

// ListHealthLogs returns the booth's full retained history, newest first.
func (s *gormStore) ListHealthLogs(ctx context.Context, boothID string) ([]model.HealthLog, error) {
	var logs []model.HealthLog
	err := s.db.WithContext(ctx).
		Where("booth_id = ?", boothID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list health logs for booth %s: %w", boothID, err)
	}
	return logs, nil
}

func (s *gormStore) DeleteHealthLogsOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.HealthLog{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete old health logs: %w", res.Error)
	}
	return res.RowsAffected, nil
}
