package booths

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"booth-status-backend/internal/apperr"
	"booth-status-backend/internal/model"
	"booth-status-backend/internal/schedule"
	"booth-status-backend/internal/store"
)

// Monday noon UTC.
var listNow = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, testDB.AutoMigrate(&model.Booth{}, &model.HealthLog{}))

	appStore := store.NewGormStore(testDB)
	svc := NewService(appStore, 15*time.Minute, zap.NewNop().Sugar())
	svc.now = func() time.Time { return listNow }
	return svc, appStore
}

func seedBoothWithLog(t *testing.T, s store.Store, boothID, operatingHours string, lastPing time.Time, logStatus, metadata string) model.Booth {
	t.Helper()
	ctx := context.Background()

	booth, err := s.UpsertBoothFromPing(ctx, lastPing, store.PingRecord{BoothID: boothID, Name: "Booth " + boothID})
	require.NoError(t, err)
	if operatingHours != "" {
		booth, err = s.UpdateBoothOperatingHours(ctx, booth.ID, operatingHours)
		require.NoError(t, err)
	}
	if logStatus != "" {
		require.NoError(t, s.AppendHealthLog(ctx, &model.HealthLog{
			BoothID:   booth.ID,
			Status:    logStatus,
			Message:   "msg-" + boothID,
			Metadata:  metadata,
			CreatedAt: lastPing,
		}))
	}
	return booth
}

func viewByBoothID(t *testing.T, views []View, boothID string) View {
	t.Helper()
	for _, v := range views {
		if v.BoothID == boothID {
			return v
		}
	}
	t.Fatalf("no view for booth %s", boothID)
	return View{}
}

func TestList_DerivedStatuses(t *testing.T) {
	svc, appStore := newTestService(t)

	seedBoothWithLog(t, appStore, "fresh", "", listNow.Add(-2*time.Minute), "healthy", `{"mode":"Normal"}`)
	seedBoothWithLog(t, appStore, "stale", "", listNow.Add(-20*time.Minute), "healthy", "")
	seedBoothWithLog(t, appStore, "maintenance", "", listNow.Add(-2*time.Minute), "healthy", `{"mode":"Maintenance"}`)
	// Schedule only covers Tuesday, so Monday noon is off-hours.
	seedBoothWithLog(t, appStore, "off-hours",
		`{"enabled":true,"schedule":[{"day":2,"start":"09:00","end":"17:00"}]}`,
		listNow.Add(-20*time.Minute), "healthy", "")

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 4)

	fresh := viewByBoothID(t, views, "fresh")
	assert.Equal(t, "healthy", fresh.Status)
	assert.Equal(t, 2, fresh.MinutesSinceLastPing)
	assert.False(t, fresh.HasIssue)
	assert.Equal(t, "msg-fresh", fresh.Message)

	stale := viewByBoothID(t, views, "stale")
	assert.Equal(t, "stale", stale.Status)
	assert.True(t, stale.HasIssue)

	maint := viewByBoothID(t, views, "maintenance")
	assert.Equal(t, "maintenance", maint.Status)
	assert.True(t, maint.IsMaintenance)

	off := viewByBoothID(t, views, "off-hours")
	assert.Equal(t, "offline", off.Status)
	assert.False(t, off.IsWithinOperatingHours)
	assert.False(t, off.HasIssue, "stale outside operating hours is expected offline")
}

func TestList_NoLogsYieldsUnknown(t *testing.T) {
	svc, appStore := newTestService(t)
	seedBoothWithLog(t, appStore, "silent", "", listNow.Add(-2*time.Minute), "", "")

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "unknown", views[0].Status)
	assert.Equal(t, "Unknown", views[0].Mode)
}

func TestList_MalformedStoredScheduleFailsOpen(t *testing.T) {
	svc, appStore := newTestService(t)

	booth, err := appStore.UpsertBoothFromPing(context.Background(), listNow.Add(-2*time.Minute),
		store.PingRecord{BoothID: "broken"})
	require.NoError(t, err)
	require.NoError(t, appStore.DB().Model(&model.Booth{}).Where("id = ?", booth.ID).
		Update("operating_hours", "{not json").Error)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].IsWithinOperatingHours)
	assert.False(t, views[0].OperatingHours.Enabled, "malformed schedule renders as the disabled default")
}

func TestCreateRenameSetOperatingHours(t *testing.T) {
	svc, appStore := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "nameless")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	booth, err := svc.Create(ctx, "booth-1", "Lobby")
	require.NoError(t, err)
	assert.Equal(t, "booth-1", booth.BoothID)

	renamed, err := svc.Rename(ctx, booth.ID, "Main Lobby")
	require.NoError(t, err)
	assert.Equal(t, "Main Lobby", renamed.Name)

	hours := schedule.OperatingHours{
		Enabled:  true,
		Schedule: []schedule.Entry{{Day: 1, Start: "09:00", End: "17:00"}},
	}
	updated, err := svc.SetOperatingHours(ctx, booth.ID, hours)
	require.NoError(t, err)

	parsed, err := schedule.Parse(updated.OperatingHours)
	require.NoError(t, err)
	assert.Equal(t, &hours, parsed)

	_, err = svc.Rename(ctx, "no-such-id", "x")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = appStore.FindBooth(ctx, "no-such-id")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
