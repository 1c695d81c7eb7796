package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dokzlo13/glowd/internal/capture"
	"github.com/dokzlo13/glowd/internal/color"
	"github.com/dokzlo13/glowd/internal/config"
	"github.com/dokzlo13/glowd/internal/lights"
	"github.com/dokzlo13/glowd/internal/palette"
	"github.com/dokzlo13/glowd/internal/region"
	"github.com/dokzlo13/glowd/internal/script"
	"github.com/dokzlo13/glowd/internal/state"
)

// SyncService runs the periodic capture -> extract -> transform ->
// apply cycle and persists the palette after each successful pass.
type SyncService struct {
	interval time.Duration
	colors   int
	restore  bool

	store     *state.Store
	extractor palette.Extractor
	transform *script.Transform
	lights    *lights.Controller

	// Capture region, loaded once at startup. Zero means full screen.
	region region.Region

	log zerolog.Logger
}

// NewSyncService creates a new SyncService.
func NewSyncService(
	cfg *config.Config,
	store *state.Store,
	extractor palette.Extractor,
	transform *script.Transform,
	lightCtrl *lights.Controller,
	logger zerolog.Logger,
) *SyncService {
	return &SyncService{
		interval:  cfg.Sync.Interval.Duration(),
		colors:    cfg.Sync.Colors,
		restore:   cfg.Sync.RestoreEnabled(),
		store:     store,
		extractor: extractor,
		transform: transform,
		lights:    lightCtrl,
		log:       logger.With().Str("component", "sync").Logger(),
	}
}

// Start loads persisted state and launches the sync loop.
func (s *SyncService) Start(ctx context.Context) {
	s.loadRegion()
	if s.restore {
		s.restoreLastPalette(ctx)
	}
	go s.run(ctx)
}

// RunOnce performs a single sync cycle instead of starting the loop.
func (s *SyncService) RunOnce(ctx context.Context) error {
	s.loadRegion()
	return s.runCycle(ctx)
}

func (s *SyncService) run(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("Sync loop started")

	// First cycle runs immediately, the ticker covers the rest.
	if err := s.runCycle(ctx); err != nil {
		s.log.Error().Err(err).Msg("Sync cycle failed")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("Sync loop stopped")
			return
		case <-ticker.C:
			if err := s.runCycle(ctx); err != nil {
				s.log.Error().Err(err).Msg("Sync cycle failed")
			}
		}
	}
}

// runCycle performs one capture -> extract -> transform -> apply pass.
func (s *SyncService) runCycle(ctx context.Context) error {
	log := s.log.With().Str("cycle", uuid.NewString()).Logger()

	img, err := capture.Grab(s.region)
	if err != nil {
		return fmt.Errorf("screen capture: %w", err)
	}

	colors := s.extractor.Extract(img, s.colors)
	if len(colors) == 0 {
		log.Warn().Msg("Palette extraction produced no colors")
		return nil
	}

	colors = s.transform.Apply(colors)
	if len(colors) == 0 {
		log.Warn().Msg("Transform produced no colors, skipping cycle")
		return nil
	}

	applied := s.lights.Apply(ctx, colors)
	log.Info().Int("lights", applied).Strs("palette", hexes(colors)).Msg("Updated lights")

	if err := s.store.SavePalette(colors); err != nil {
		log.Warn().Err(err).Msg("Failed to persist palette")
	}
	return nil
}

// loadRegion reads the persisted capture region. Any failure degrades
// to full-screen capture instead of stopping the daemon.
func (s *SyncService) loadRegion() {
	r, ok, err := s.store.Region()
	switch {
	case err != nil:
		s.log.Warn().Err(err).Msg("Failed to load saved region, capturing full screen")
		s.region = region.Region{}
	case ok:
		s.region = r
		s.log.Info().Str("region", r.String()).Msg("Using saved capture region")
	default:
		s.log.Info().Msg("No saved region, capturing full screen")
	}
}

// restoreLastPalette re-applies the palette from the previous run so
// the lights come back before the first capture completes.
func (s *SyncService) restoreLastPalette(ctx context.Context) {
	colors, ok, err := s.store.LastPalette()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to load last palette")
		return
	}
	if !ok || len(colors) == 0 {
		return
	}

	applied := s.lights.Apply(ctx, colors)
	s.log.Info().Int("lights", applied).Strs("palette", hexes(colors)).Msg("Restored last palette")
}

func hexes(colors []color.RGB) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.Hex()
	}
	return out
}
