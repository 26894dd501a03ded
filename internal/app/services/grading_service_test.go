package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/pkg/apperrors"
)

type fakeConfigStore struct {
	candidates []*models.GradingConfig
}

func (f *fakeConfigStore) GetCandidates(_ context.Context, _ int64) ([]*models.GradingConfig, error) {
	return f.candidates, nil
}

func (f *fakeConfigStore) UpsertGlobal(_ context.Context, cfg *models.GradingConfig) error {
	cfg.ID = 1
	return nil
}

func (f *fakeConfigStore) UpsertCycle(_ context.Context, cycleID int64, cfg *models.GradingConfig) error {
	cfg.ID = 2
	cfg.CycleID = &cycleID
	return nil
}

func at(day int) time.Time {
	return time.Date(2025, time.September, day, 0, 0, 0, 0, time.UTC)
}

func TestEffectiveConfigPrecedence(t *testing.T) {
	cycleScoped := &models.GradingConfig{ID: 1, Scope: models.ScopeCycle, UpdatedAt: at(1)}
	global := &models.GradingConfig{ID: 2, Scope: models.ScopeGlobal, UpdatedAt: at(20)}

	tests := []struct {
		name       string
		candidates []*models.GradingConfig
		wantID     int64
	}{
		{
			name:       "cycle beats newer global",
			candidates: []*models.GradingConfig{global, cycleScoped},
			wantID:     1,
		},
		{
			name:       "global fallback alone",
			candidates: []*models.GradingConfig{global},
			wantID:     2,
		},
		{
			name: "newer global wins among globals",
			candidates: []*models.GradingConfig{
				{ID: 3, Scope: models.ScopeGlobal, UpdatedAt: at(5)},
				{ID: 4, Scope: models.ScopeGlobal, UpdatedAt: at(10)},
			},
			wantID: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := effectiveConfig(tt.candidates)
			if got == nil {
				t.Fatal("effectiveConfig() = nil")
			}
			if got.ID != tt.wantID {
				t.Errorf("effectiveConfig() id = %d, want %d", got.ID, tt.wantID)
			}
		})
	}
}

func TestEffectiveConfigEmpty(t *testing.T) {
	if got := effectiveConfig(nil); got != nil {
		t.Errorf("effectiveConfig(nil) = %v, want nil", got)
	}
}

func TestResolveEffectiveConfigNotFound(t *testing.T) {
	svc := NewGradingService(&fakeConfigStore{}, &fakeCycleStore{}, zerolog.Nop())

	_, err := svc.ResolveEffectiveConfig(context.Background(), 1)
	if !errors.Is(err, apperrors.ErrConfigNotFound) {
		t.Errorf("ResolveEffectiveConfig() error = %v, want ErrConfigNotFound", err)
	}
}

func TestResolveEffectiveConfig(t *testing.T) {
	store := &fakeConfigStore{candidates: []*models.GradingConfig{
		{ID: 7, Scope: models.ScopeGlobal, UpdatedAt: at(3)},
	}}
	svc := NewGradingService(store, &fakeCycleStore{}, zerolog.Nop())

	cfg, err := svc.ResolveEffectiveConfig(context.Background(), 1)
	if err != nil {
		t.Fatalf("ResolveEffectiveConfig() error = %v", err)
	}
	if cfg.ID != 7 {
		t.Errorf("ResolveEffectiveConfig() id = %d, want 7", cfg.ID)
	}
}
