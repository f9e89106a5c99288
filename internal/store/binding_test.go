package store

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestBindingRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	repo := s.Bindings()

	binding := &Binding{
		ID:         "test-binding-1",
		Command:    "next",
		PluginName: "presentation",
		ActionName: "next-slide",
		Config:     json.RawMessage(`{"delay_ms":50}`),
		Enabled:    true,
	}

	if err := repo.Create(binding); err != nil {
		t.Fatalf("failed to create binding: %v", err)
	}
	if binding.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set after create")
	}

	got, err := repo.GetByID("test-binding-1")
	if err != nil {
		t.Fatalf("failed to get binding: %v", err)
	}
	if got.Command != "next" {
		t.Errorf("expected command next, got %q", got.Command)
	}
	if got.PluginName != "presentation" || got.ActionName != "next-slide" {
		t.Errorf("unexpected plugin/action: %s/%s", got.PluginName, got.ActionName)
	}
	if string(got.Config) != `{"delay_ms":50}` {
		t.Errorf("unexpected config: %s", got.Config)
	}
	if !got.Enabled {
		t.Error("expected binding enabled")
	}
}

func TestBindingRepository_GetByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Bindings().GetByID("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBindingRepository_GetByCommand(t *testing.T) {
	s := newTestStore(t)
	repo := s.Bindings()

	binding := &Binding{
		ID:         "test-binding-2",
		Command:    "pause",
		PluginName: "presentation",
		ActionName: "blank-screen",
		Enabled:    true,
	}
	if err := repo.Create(binding); err != nil {
		t.Fatalf("failed to create binding: %v", err)
	}

	got, err := repo.GetByCommand("pause")
	if err != nil {
		t.Fatalf("failed to get binding by command: %v", err)
	}
	if got == nil || got.ID != "test-binding-2" {
		t.Errorf("expected binding test-binding-2, got %+v", got)
	}

	// Nil config defaults to an empty JSON object
	if string(got.Config) != "{}" {
		t.Errorf("expected empty config object, got %s", got.Config)
	}

	// Unbound commands return nil without an error
	got, err = repo.GetByCommand("zoom_out")
	if err != nil {
		t.Fatalf("unexpected error for unbound command: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unbound command, got %+v", got)
	}
}

func TestBindingRepository_CommandUnique(t *testing.T) {
	s := newTestStore(t)
	repo := s.Bindings()

	first := &Binding{ID: "b1", Command: "next", PluginName: "presentation", ActionName: "next-slide", Enabled: true}
	if err := repo.Create(first); err != nil {
		t.Fatalf("failed to create first binding: %v", err)
	}

	// A second binding for the same command must be rejected
	second := &Binding{ID: "b2", Command: "next", PluginName: "keyboard", ActionName: "keypress", Enabled: true}
	if err := repo.Create(second); err == nil {
		t.Error("expected unique constraint error for duplicate command")
	}
}

func TestBindingRepository_List(t *testing.T) {
	s := newTestStore(t)
	repo := s.Bindings()

	for _, b := range []*Binding{
		{ID: "b1", Command: "prev", PluginName: "presentation", ActionName: "prev-slide", Enabled: true},
		{ID: "b2", Command: "next", PluginName: "presentation", ActionName: "next-slide", Enabled: true},
	} {
		if err := repo.Create(b); err != nil {
			t.Fatalf("failed to create binding: %v", err)
		}
	}

	bindings, err := repo.List()
	if err != nil {
		t.Fatalf("failed to list bindings: %v", err)
	}
	if len(bindings) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(bindings))
	}

	// Ordered by command
	if bindings[0].Command != "next" || bindings[1].Command != "prev" {
		t.Errorf("expected command order [next prev], got [%s %s]",
			bindings[0].Command, bindings[1].Command)
	}
}

func TestBindingRepository_Update(t *testing.T) {
	s := newTestStore(t)
	repo := s.Bindings()

	binding := &Binding{ID: "b1", Command: "start", PluginName: "presentation", ActionName: "start-presentation", Enabled: true}
	if err := repo.Create(binding); err != nil {
		t.Fatalf("failed to create binding: %v", err)
	}

	binding.ActionName = "resume-presentation"
	binding.Enabled = false
	if err := repo.Update(binding); err != nil {
		t.Fatalf("failed to update binding: %v", err)
	}

	got, err := repo.GetByID("b1")
	if err != nil {
		t.Fatalf("failed to get binding: %v", err)
	}
	if got.ActionName != "resume-presentation" {
		t.Errorf("expected updated action name, got %q", got.ActionName)
	}
	if got.Enabled {
		t.Error("expected binding disabled after update")
	}

	// Updating a missing binding reports ErrNotFound
	missing := &Binding{ID: "nope", Command: "prev", PluginName: "p", ActionName: "a"}
	if err := repo.Update(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBindingRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Bindings()

	binding := &Binding{ID: "b1", Command: "zoom_in", PluginName: "presentation", ActionName: "zoom-in", Enabled: true}
	if err := repo.Create(binding); err != nil {
		t.Fatalf("failed to create binding: %v", err)
	}

	if err := repo.Delete("b1"); err != nil {
		t.Fatalf("failed to delete binding: %v", err)
	}

	if _, err := repo.GetByID("b1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := repo.Delete("b1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for repeated delete, got %v", err)
	}
}

func TestBindingRepository_EnsureDefaults(t *testing.T) {
	s := newTestStore(t)
	repo := s.Bindings()

	defaults := []*Binding{
		{Command: "next", PluginName: "presentation", ActionName: "next-slide", Enabled: true},
		{Command: "prev", PluginName: "presentation", ActionName: "prev-slide", Enabled: true},
	}

	if err := repo.EnsureDefaults(defaults); err != nil {
		t.Fatalf("failed to ensure defaults: %v", err)
	}

	bindings, err := repo.List()
	if err != nil {
		t.Fatalf("failed to list bindings: %v", err)
	}
	if len(bindings) != 2 {
		t.Fatalf("expected 2 seeded bindings, got %d", len(bindings))
	}
	for _, b := range bindings {
		if b.ID == "" {
			t.Error("seeded binding should have an assigned ID")
		}
	}

	// A user edit survives a second seeding pass
	edited, err := repo.GetByCommand("next")
	if err != nil {
		t.Fatalf("failed to get binding: %v", err)
	}
	edited.ActionName = "custom-action"
	if err := repo.Update(edited); err != nil {
		t.Fatalf("failed to update binding: %v", err)
	}

	if err := repo.EnsureDefaults(defaults); err != nil {
		t.Fatalf("failed to re-ensure defaults: %v", err)
	}

	got, err := repo.GetByCommand("next")
	if err != nil {
		t.Fatalf("failed to get binding: %v", err)
	}
	if got.ActionName != "custom-action" {
		t.Errorf("expected user edit to survive seeding, got %q", got.ActionName)
	}

	bindings, err = repo.List()
	if err != nil {
		t.Fatalf("failed to list bindings: %v", err)
	}
	if len(bindings) != 2 {
		t.Errorf("expected seeding to stay at 2 bindings, got %d", len(bindings))
	}
}
