// Package reminder publishes a scheduled digest of today's reservations
// to a configured chat channel.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	robfigcron "github.com/robfig/cron/v3"

	"github.com/goodfoods/goodfoods/internal/bus"
	"github.com/goodfoods/goodfoods/internal/config"
	"github.com/goodfoods/goodfoods/internal/ledger"
)

// Service runs the daily reservation digest on a cron schedule.
type Service struct {
	cfg      *config.RemindersConfig
	store    *ledger.Ledger
	outbound *bus.ChannelBus
	now      func() time.Time
}

func NewService(cfg *config.RemindersConfig, store *ledger.Ledger, outbound *bus.ChannelBus) *Service {
	return &Service{
		cfg:      cfg,
		store:    store,
		outbound: outbound,
		now:      time.Now,
	}
}

// WithClock overrides the service clock. Used in tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Start schedules the digest and blocks until ctx is cancelled.
// A disabled or misconfigured service just waits for shutdown.
func (s *Service) Start(ctx context.Context) error {
	if !s.cfg.Enabled {
		<-ctx.Done()
		return ctx.Err()
	}
	if s.cfg.Channel == "" || s.cfg.ChatId == "" {
		slog.Warn("reminder: enabled but channel/chatId not configured")
		<-ctx.Done()
		return ctx.Err()
	}

	c := robfigcron.New()
	if _, err := c.AddFunc(s.cfg.Schedule, s.fire); err != nil {
		return fmt.Errorf("reminder: bad schedule %q: %w", s.cfg.Schedule, err)
	}
	c.Start()
	slog.Info("reminder: scheduled", "schedule", s.cfg.Schedule, "channel", s.cfg.Channel)

	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()
	return ctx.Err()
}

func (s *Service) fire() {
	digest, count, err := s.Digest()
	if err != nil {
		slog.Error("reminder: digest failed", "err", err)
		return
	}
	if count == 0 {
		slog.Info("reminder: no reservations today, skipping digest")
		return
	}

	msg := bus.NewChannelMessageBuilder(bus.Channel(s.cfg.Channel), s.cfg.ChatId, digest).
		Metadata(map[string]any{"sender": bus.SenderIdReminder}).
		Build()
	s.outbound.Publish(msg)
	slog.Info("reminder: digest published", "reservations", count)
}

// Digest builds the summary of today's confirmed reservations.
// Returns the text and the number of reservations included.
func (s *Service) Digest() (string, int, error) {
	all, err := s.store.List()
	if err != nil {
		return "", 0, err
	}

	today := s.now().Format("2006-01-02")
	var todays []ledger.Reservation
	for _, r := range all {
		if r.Date == today && r.Status == "confirmed" {
			todays = append(todays, r)
		}
	}
	if len(todays) == 0 {
		return "", 0, nil
	}

	sort.Slice(todays, func(i, j int) bool {
		if todays[i].Time != todays[j].Time {
			return todays[i].Time < todays[j].Time
		}
		return todays[i].ReservationID < todays[j].ReservationID
	})

	var b strings.Builder
	fmt.Fprintf(&b, "📅 GoodFoods reservations for today (%s): %d\n", today, len(todays))
	for _, r := range todays {
		fmt.Fprintf(&b, "\n• %s — %s, party of %d at %s (Table %d, %s)",
			r.Time, r.CustomerName, r.PartySize, r.BranchName, r.TableNumber, r.ReservationID)
	}

	return b.String(), len(todays), nil
}
