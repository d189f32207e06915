package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"booth-status-backend/internal/model"
)

// PushSender defines the interface for sending a web push notification.
type PushSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of PushSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Push fans alerts out to every registered staff browser subscription
// through a pool of worker goroutines. It implements Notifier; dispatching
// enqueues the formatted text and returns immediately.
type Push struct {
	size    int
	jobs    chan string
	db      *gorm.DB
	webpush *webpush.Options
	sender  PushSender
	log     *zap.SugaredLogger
}

// NewPush creates a new push notifier with a worker pool of the given size.
func NewPush(size int, db *gorm.DB, webpushOptions *webpush.Options, log *zap.SugaredLogger) *Push {
	return &Push{
		size:    size,
		jobs:    make(chan string, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		log:     log,
	}
}

// Start launches the worker goroutines.
func (p *Push) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		go p.worker(ctx, i)
	}
}

func (p *Push) worker(ctx context.Context, id int) {
	p.log.Debugw("push worker started", "worker", id)
	for {
		select {
		case payload := <-p.jobs:
			p.broadcast(ctx, payload)
		case <-ctx.Done():
			p.log.Debugw("push worker shutting down", "worker", id)
			return
		}
	}
}

// Jobs returns the jobs channel for testing.
func (p *Push) Jobs() chan string {
	return p.jobs
}

func (p *Push) SendHealthUpdate(_ context.Context, a HealthUpdate) error {
	text := fmt.Sprintf("Booth %s reported %s", displayName(a.Name, a.BoothID), a.Status)
	if a.Message != "" {
		text += ": " + a.Message
	}
	p.jobs <- text
	return nil
}

func (p *Push) SendStaleAlert(_ context.Context, a StaleAlert) error {
	p.jobs <- fmt.Sprintf("Booth %s has been silent for %d minutes (last ping %s)",
		displayName(a.Name, a.BoothID), a.MinutesSinceLastPing, a.LastPing.Format(time.RFC1123))
	return nil
}

func (p *Push) SendModeAlert(_ context.Context, a ModeAlert) error {
	p.jobs <- fmt.Sprintf("Booth %s has been in %s mode for %.1f hours",
		displayName(a.Name, a.BoothID), a.Mode, a.HoursInMode)
	return nil
}

// broadcast sends the payload to every registered subscription.
func (p *Push) broadcast(ctx context.Context, payload string) {
	var subscriptions []model.PushSubscription
	if err := p.db.WithContext(ctx).Find(&subscriptions).Error; err != nil {
		p.log.Errorw("failed to fetch push subscriptions", "error", err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	p.log.Debugw("broadcasting push notification", "subscriptions", len(subscriptions))
	for _, sub := range subscriptions {
		p.sendOne(ctx, sub, []byte(payload))
	}
}

func (p *Push) sendOne(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := p.sender.Send(payload, wpSub, p.webpush)
	if err != nil {
		p.log.Errorw("failed to send push notification", "endpoint", sub.Endpoint, "error", err)
		return
	}
	defer resp.Body.Close()

	// A 410 means the browser dropped the subscription.
	if resp.StatusCode == http.StatusGone {
		p.log.Infow("pruning expired push subscription", "endpoint", sub.Endpoint)
		if err := p.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			p.log.Errorw("failed to delete expired subscription", "endpoint", sub.Endpoint, "error", err)
		}
	}
}

func displayName(name, boothID string) string {
	if name != "" {
		return name
	}
	return boothID
}
