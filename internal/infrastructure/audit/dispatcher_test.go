package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrolink/livestock-api/internal/core/domain"
)

type recordingRepo struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (r *recordingRepo) InsertEvent(_ context.Context, event *domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *recordingRepo) snapshot() []domain.AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuthEvent, len(r.events))
	copy(out, r.events)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestDispatcher_PersistsEvents(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.AuthEvent{Kind: domain.KindAdmin, SubjectKey: "alice@example.com", Action: domain.AuditLogin, Outcome: domain.OutcomeSuccess})
	d.Record(domain.AuthEvent{Kind: domain.KindCustomer, SubjectKey: "12345678900", Action: domain.AuditRegister, Outcome: domain.OutcomeSuccess})

	waitFor(t, func() bool { return len(repo.snapshot()) == 2 })
}

func TestDispatcher_SameSubjectKeepsOrder(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	outcomes := []string{domain.OutcomeDenied, domain.OutcomeDenied, domain.OutcomeSuccess}
	for _, o := range outcomes {
		d.Record(domain.AuthEvent{Kind: domain.KindAdmin, SubjectKey: "alice@example.com", Action: domain.AuditLogin, Outcome: o})
	}

	waitFor(t, func() bool { return len(repo.snapshot()) == len(outcomes) })

	for i, e := range repo.snapshot() {
		if e.Outcome != outcomes[i] {
			t.Fatalf("event %d out of order: got %q, want %q", i, e.Outcome, outcomes[i])
		}
	}
}

func TestDispatcher_ShardIsStablePerSubject(t *testing.T) {
	d := NewDispatcher(8, &recordingRepo{}, zerolog.Nop())

	first := d.shardIndex("alice@example.com")
	for i := 0; i < 100; i++ {
		if d.shardIndex("alice@example.com") != first {
			t.Fatal("shard index must be deterministic per subject")
		}
	}
}

func TestDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
