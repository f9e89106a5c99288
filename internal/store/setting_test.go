package store

import (
	"errors"
	"testing"
)

func TestSettingRepository_SetAndGet(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	if err := repo.Set(SettingDetectionEnabled, "true"); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}

	value, err := repo.Get(SettingDetectionEnabled)
	if err != nil {
		t.Fatalf("failed to get setting: %v", err)
	}
	if value != "true" {
		t.Errorf("expected value true, got %q", value)
	}
}

func TestSettingRepository_Get_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Settings().Get("missing-key")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSettingRepository_Overwrite(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	if err := repo.Set(SettingDetectionEnabled, "true"); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}
	if err := repo.Set(SettingDetectionEnabled, "false"); err != nil {
		t.Fatalf("failed to overwrite setting: %v", err)
	}

	value, err := repo.Get(SettingDetectionEnabled)
	if err != nil {
		t.Fatalf("failed to get setting: %v", err)
	}
	if value != "false" {
		t.Errorf("expected overwritten value false, got %q", value)
	}
}
