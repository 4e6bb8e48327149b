package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManagerLifecycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager(ctx, nil)

	s := m.Create()
	if s.ID == "" {
		t.Fatalf("session created without id")
	}
	got, err := m.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("Get returned %v, %v", got, err)
	}
	if m.Count() != 1 {
		t.Fatalf("count = %d, want 1", m.Count())
	}

	if err := m.Delete(s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Get after delete: %v", err)
	}
	if err := m.Delete(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("double delete: %v", err)
	}
}

func TestToastQueueDrains(t *testing.T) {
	s := &Session{}
	s.pushToast("event", "first")
	s.pushToast("achievement", "second")

	got := s.DrainToasts()
	if len(got) != 2 || got[0].Text != "first" || got[1].Kind != "achievement" {
		t.Fatalf("drained toasts = %+v", got)
	}
	if again := s.DrainToasts(); len(again) != 0 {
		t.Fatalf("queue not cleared: %+v", again)
	}
}

func TestToastTTLExpiry(t *testing.T) {
	s := &Session{}
	s.mu.Lock()
	s.toasts = append(s.toasts,
		Toast{Text: "stale", Kind: "event", Created: time.Now().Add(-5 * time.Second)},
		Toast{Text: "fresh", Kind: "event", Created: time.Now()},
	)
	s.mu.Unlock()

	got := s.DrainToasts()
	if len(got) != 1 || got[0].Text != "fresh" {
		t.Fatalf("TTL filter kept %+v", got)
	}
}

func TestSessionIdentity(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager(ctx, nil)
	s := m.Create()
	defer m.Delete(s.ID)

	if s.GetIdentity() != nil {
		t.Fatalf("fresh session has identity")
	}
	s.SetIdentity(Identity{ID: "123", Username: "ceo_martin"})
	id := s.GetIdentity()
	if id == nil || id.Username != "ceo_martin" {
		t.Fatalf("identity = %+v", id)
	}
}

func TestRestoreWrapsSnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewManager(ctx, nil)

	src := m.Create()
	defer m.Delete(src.ID)
	src.Engine.Click()
	snap := src.Engine.Snapshot()

	restored := m.Restore(snap)
	defer m.Delete(restored.ID)
	if restored.ID == src.ID {
		t.Fatalf("restore reused session id")
	}
	if got := restored.Engine.Snapshot().TotalClicks; got != 1 {
		t.Fatalf("restored clicks = %d, want 1", got)
	}
}
