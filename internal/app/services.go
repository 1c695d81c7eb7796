package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dokzlo13/glowd/internal/config"
	"github.com/dokzlo13/glowd/internal/db"
	"github.com/dokzlo13/glowd/internal/lights"
	"github.com/dokzlo13/glowd/internal/palette"
	"github.com/dokzlo13/glowd/internal/script"
	"github.com/dokzlo13/glowd/internal/state"
)

// Services is a container for all application services.
// It manages service initialization order and dependencies.
type Services struct {
	cfg *config.Config
	log zerolog.Logger

	// Core infrastructure
	DB    *db.DB
	Store *state.Store

	// Palette pipeline
	Extractor palette.Extractor
	Transform *script.Transform

	// Set during Start, discovery talks to the network
	Lights *lights.Controller
	Sync   *SyncService
}

// NewServices creates all services with proper dependency injection.
func NewServices(cfg *config.Config, logger zerolog.Logger) (*Services, error) {
	s := &Services{cfg: cfg, log: logger}

	// Initialize database
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	s.DB = database

	// Initialize state store
	s.Store = state.NewStore(database)

	// Initialize palette extractor
	s.Extractor = palette.Strips{}

	// Load the optional Lua transform hook
	if cfg.Script.Path != "" {
		s.Transform, err = script.Load(cfg.Script.Path, logger)
		if err != nil {
			s.Close()
			return nil, err
		}
	}

	return s, nil
}

// initLights discovers the configured vendor's lights. Never fails:
// the controller degrades to demo mode on any discovery problem.
func (s *Services) initLights(ctx context.Context) {
	s.Lights = lights.New(ctx, lights.Options{
		Vendor:                  s.cfg.Lights.VendorTag(),
		Transition:              s.cfg.Lights.Transition.Duration(),
		RateLimitRPS:            s.cfg.Lights.RateLimitRPS,
		HueBridgeIP:             s.cfg.Lights.Hue.BridgeIP,
		HueUsername:             s.cfg.Lights.Hue.Username,
		LifxDiscoveryWindow:     s.cfg.Lights.Lifx.DiscoveryWindow.Duration(),
		YeelightDiscoveryWindow: s.cfg.Lights.Yeelight.DiscoveryWindow.Duration(),
	}, s.log)
	s.log.Info().Strs("lights", s.Lights.Names()).Msg("Light controller ready")

	s.Sync = NewSyncService(s.cfg, s.Store, s.Extractor, s.Transform, s.Lights, s.log)
}

// Start discovers lights and launches the sync loop.
func (s *Services) Start(ctx context.Context) error {
	s.initLights(ctx)
	s.Sync.Start(ctx)
	return nil
}

// RunOnce discovers lights and performs a single sync cycle.
func (s *Services) RunOnce(ctx context.Context) error {
	s.initLights(ctx)
	return s.Sync.RunOnce(ctx)
}

// Stop gracefully stops all services.
func (s *Services) Stop() error {
	s.Close()
	return nil
}

// Close releases all resources.
func (s *Services) Close() {
	if s.Lights != nil {
		s.Lights.Close()
	}
	if s.Transform != nil {
		s.Transform.Close()
	}
	if s.DB != nil {
		s.DB.Close()
	}
}
