package reminder

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goodfoods/goodfoods/internal/bus"
	"github.com/goodfoods/goodfoods/internal/config"
	"github.com/goodfoods/goodfoods/internal/ledger"
)

var digestClock = func() time.Time {
	return time.Date(2025, 12, 25, 8, 0, 0, 0, time.UTC)
}

func seedLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	store := ledger.New(filepath.Join(t.TempDir(), "reservations.json"))

	entries := []ledger.Reservation{
		{ReservationID: "GF-B", CustomerName: "Priya Sharma", BranchName: "GoodFoods - Bandra",
			Date: "2025-12-25", Time: "19:00", PartySize: 4, TableNumber: 3, Status: "confirmed"},
		{ReservationID: "GF-A", CustomerName: "Rahul Verma", BranchName: "GoodFoods - Koramangala",
			Date: "2025-12-25", Time: "12:30", PartySize: 2, TableNumber: 7, Status: "confirmed"},
		{ReservationID: "GF-C", CustomerName: "Other Day", BranchName: "GoodFoods - Bandra",
			Date: "2025-12-26", Time: "19:00", PartySize: 2, TableNumber: 1, Status: "confirmed"},
	}
	for _, r := range entries {
		if err := store.Append(r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	return store
}

func TestDigest_TodaysReservationsSortedByTime(t *testing.T) {
	cfg := config.RemindersConfig{Enabled: true, Channel: "telegram", ChatId: "42"}
	svc := NewService(&cfg, seedLedger(t), bus.NewChannelBus(1)).WithClock(digestClock)

	digest, count, err := svc.Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d", count)
	}
	if !strings.Contains(digest, "reservations for today (2025-12-25): 2") {
		t.Errorf("header wrong:\n%s", digest)
	}
	if strings.Contains(digest, "Other Day") {
		t.Error("digest includes tomorrow's booking")
	}
	// 12:30 before 19:00.
	if strings.Index(digest, "Rahul Verma") > strings.Index(digest, "Priya Sharma") {
		t.Errorf("not sorted by time:\n%s", digest)
	}
}

func TestDigest_EmptyDay(t *testing.T) {
	cfg := config.RemindersConfig{Enabled: true, Channel: "telegram", ChatId: "42"}
	store := ledger.New(filepath.Join(t.TempDir(), "reservations.json"))
	svc := NewService(&cfg, store, bus.NewChannelBus(1)).WithClock(digestClock)

	_, count, err := svc.Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d", count)
	}
}

func TestFire_PublishesToChannelBus(t *testing.T) {
	outbound := bus.NewChannelBus(1)
	cfg := config.RemindersConfig{Enabled: true, Channel: "telegram", ChatId: "42"}
	svc := NewService(&cfg, seedLedger(t), outbound).WithClock(digestClock)

	svc.fire()

	select {
	case msg := <-outbound.Subscribe():
		if msg.Channel() != bus.ChannelTelegram || msg.ChatId() != "42" {
			t.Errorf("routing = %s:%s", msg.Channel(), msg.ChatId())
		}
		if !strings.Contains(msg.Content(), "Priya Sharma") {
			t.Errorf("content = %q", msg.Content())
		}
	default:
		t.Fatal("nothing published")
	}
}

func TestStart_DisabledWaitsForShutdown(t *testing.T) {
	cfg := config.RemindersConfig{Enabled: false}
	svc := NewService(&cfg, seedLedger(t), bus.NewChannelBus(1))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("err = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestStart_BadScheduleErrors(t *testing.T) {
	cfg := config.RemindersConfig{Enabled: true, Schedule: "not a cron expr", Channel: "telegram", ChatId: "42"}
	svc := NewService(&cfg, seedLedger(t), bus.NewChannelBus(1))

	if err := svc.Start(context.Background()); err == nil {
		t.Error("expected error for bad schedule")
	}
}
