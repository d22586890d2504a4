package schedule

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAddAcceptsStandardSpec(t *testing.T) {
	r := New(discardLogger(), context.Background())

	if _, err := r.Add("0 6 * * *", func(ctx context.Context) {}); err != nil {
		t.Errorf("Add(daily spec): %v", err)
	}
	if _, err := r.Add("*/5 * * * *", func(ctx context.Context) {}); err != nil {
		t.Errorf("Add(every 5 minutes): %v", err)
	}
}

func TestAddRejectsBadSpec(t *testing.T) {
	r := New(discardLogger(), context.Background())

	if _, err := r.Add("not a cron spec", func(ctx context.Context) {}); err == nil {
		t.Error("Add accepted a malformed spec")
	}
}

func TestStartStop(t *testing.T) {
	r := New(discardLogger(), nil)

	if _, err := r.Add("0 6 * * *", func(ctx context.Context) {}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	r.Start()
	r.Stop()
}
