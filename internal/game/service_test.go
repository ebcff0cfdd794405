package game

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingNotifier) Notify(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func newTestService(t *testing.T) (*Service, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	return NewService(mustCatalog(t), NewFarmStore(), n), n
}

func TestServiceNewFarmUsesStartingBalance(t *testing.T) {
	svc, _ := newTestService(t)

	st := svc.NewFarm("alice")
	if !st.Balance.Equal(d("150")) {
		t.Fatalf("expected starting balance 150 got %s", st.Balance)
	}
	got, err := svc.Farm("alice")
	if err != nil || got.ID != "alice" {
		t.Fatalf("expected alice's farm, got %+v %v", got, err)
	}
	if _, err := svc.Farm("bob"); !errors.Is(err, ErrFarmNotFound) {
		t.Fatalf("expected ErrFarmNotFound got %v", err)
	}
}

func TestServiceCraftCommitsAndNotifies(t *testing.T) {
	svc, n := newTestService(t)
	svc.NewFarm("alice")

	got, err := svc.Craft("alice", "Axe", d("10"))
	if err != nil {
		t.Fatalf("craft: %v", err)
	}
	if !got.Balance.Equal(d("140")) {
		t.Fatalf("expected balance 140 got %s", got.Balance)
	}

	stored, _ := svc.Farm("alice")
	assertQty(t, stored, "Axe", "10")

	if len(n.events) != 1 {
		t.Fatalf("expected 1 event got %d", len(n.events))
	}
	ev := n.events[0]
	if ev.Type != ActionItemCrafted || ev.PlayerID != "alice" || ev.Item != "Axe" || !ev.Amount.Equal(d("10")) {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.ID == "" || !ev.Balance.Equal(d("140")) {
		t.Fatalf("unexpected event id/balance: %+v", ev)
	}
}

func TestServiceCraftFailureIsNoOp(t *testing.T) {
	svc, n := newTestService(t)
	svc.NewFarm("alice")

	_, err := svc.Craft("alice", "Cake", d("1"))
	if !errors.Is(err, ErrMissingPrerequisite) {
		t.Fatalf("expected ErrMissingPrerequisite got %v", err)
	}
	stored, _ := svc.Farm("alice")
	if !stored.Balance.Equal(d("150")) || len(stored.Inventory) != 0 {
		t.Fatalf("expected untouched farm, got %+v", stored)
	}
	if len(n.events) != 0 {
		t.Fatalf("expected no events got %d", len(n.events))
	}

	if _, err := svc.Craft("ghost", "Axe", d("1")); !errors.Is(err, ErrFarmNotFound) {
		t.Fatalf("expected ErrFarmNotFound got %v", err)
	}
}

func TestServiceCraftWithoutNotifier(t *testing.T) {
	svc := NewService(mustCatalog(t), nil, nil)
	svc.NewFarm("alice")

	if _, err := svc.Craft("alice", "Axe", d("1")); err != nil {
		t.Fatalf("craft: %v", err)
	}
}

func TestServiceReloadCatalog(t *testing.T) {
	svc, _ := newTestService(t)
	svc.NewFarm("alice")

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	updated := "tools:\n  - name: Axe\n    price: \"1\"\n    disabled: true\n"
	if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := svc.ReloadCatalog(path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, err := svc.Craft("alice", "Axe", d("1")); !errors.Is(err, ErrItemDisabled) {
		t.Fatalf("expected reloaded catalog to disable Axe, got %v", err)
	}
	if got := len(svc.Craftables()); got != 1 {
		t.Fatalf("expected 1 craftable after reload got %d", got)
	}

	if err := svc.ReloadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected reload error")
	}
	if got := len(svc.Craftables()); got != 1 {
		t.Fatalf("expected failed reload to keep previous catalog")
	}
}

func TestServiceConcurrentCraftsNeverOverspend(t *testing.T) {
	svc, _ := newTestService(t)
	svc.NewFarm("alice")

	var wg sync.WaitGroup
	const workers = 40

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			svc.Craft("alice", "Axe", d("10"))
		}()
	}
	wg.Wait()

	st, _ := svc.Farm("alice")
	if !st.Balance.IsZero() {
		t.Fatalf("expected balance to be fully spent got %s", st.Balance)
	}
	assertQty(t, st, "Axe", "150")
}

func TestServiceWithoutCatalog(t *testing.T) {
	svc := NewService(nil, nil, nil)

	if got := svc.Craftables(); len(got) != 0 {
		t.Fatalf("expected no craftables got %d", len(got))
	}
	st := svc.NewFarm("alice")
	if !st.Balance.IsZero() {
		t.Fatalf("expected zero starting balance got %s", st.Balance)
	}
	if _, err := svc.Craft("alice", "Axe", d("1")); !errors.Is(err, ErrNotCraftable) {
		t.Fatalf("expected ErrNotCraftable got %v", err)
	}
}
