// Package server wires the store, the vendor clients, the room manager, and
// the HTTP/WebSocket surfaces into the wattsd daemon.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/dabloons/wattsd/internal/config"
	"github.com/dabloons/wattsd/internal/events"
	"github.com/dabloons/wattsd/internal/http/handlers"
	"github.com/dabloons/wattsd/internal/http/mw"
	"github.com/dabloons/wattsd/internal/http/routes"
	"github.com/dabloons/wattsd/internal/light"
	"github.com/dabloons/wattsd/internal/room"
	"github.com/dabloons/wattsd/internal/store"
	"github.com/dabloons/wattsd/internal/ws"
	"github.com/dabloons/wattsd/pkg/hue"
	"github.com/dabloons/wattsd/pkg/nanoleaf"
)

// BuildInfo carries version metadata injected at link time.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// Server manages the wattsd daemon: the persistent store, vendor clients,
// the room manager, discovery, and the HTTP/WebSocket API.
type Server struct {
	logger     *slog.Logger
	cfg        *config.Config
	build      BuildInfo
	store      store.Store
	bridge     *hue.Client
	devices    *nanoleaf.Client
	rooms      *room.Manager
	eventBus   *events.Bus
	logLevel   *slog.LevelVar
	httpServer *http.Server
	rootCtx    context.Context
	rootCancel context.CancelFunc
	wg         sync.WaitGroup
}

// New creates a new server instance.
func New(logger *slog.Logger, cfg *config.Config, st store.Store, logLevel *slog.LevelVar, build BuildInfo) *Server {
	eventBus := events.NewBus()
	bridge := hue.NewClient(cfg.Hue.Bridge, cfg.Hue.Username, logger)
	devices := nanoleaf.NewClient(logger)
	rooms := room.NewManager(logger, st, bridge, devices, eventBus)

	rootCtx, rootCancel := context.WithCancel(context.Background())

	return &Server{
		logger:     logger,
		cfg:        cfg,
		build:      build,
		store:      st,
		bridge:     bridge,
		devices:    devices,
		rooms:      rooms,
		eventBus:   eventBus,
		logLevel:   logLevel,
		rootCtx:    rootCtx,
		rootCancel: rootCancel,
	}
}

// Rooms exposes the room manager, mainly for tests.
func (s *Server) Rooms() *room.Manager {
	return s.rooms
}

// Start begins server operations: light import, discovery, and the HTTP API.
func (s *Server) Start() error {
	s.logger.Info("Starting wattsd server")

	// Import the bridge's lights once at startup so rooms can reference
	// them immediately. Discovery keeps the inventory fresh afterwards.
	if s.cfg.Hue.Bridge != "" {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("panic in bridge light import", "recover", r)
				}
			}()
			s.importBridgeLights(s.rootCtx)
		}()
	}

	if s.cfg.Discovery.Enabled {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("panic in discovery worker", "recover", r)
				}
			}()
			interval := time.Duration(s.cfg.Discovery.Interval) * time.Second
			nanoleaf.Discover(s.rootCtx, s.logger, interval, s.registerDiscoveredDevice)
		}()
	}

	if s.cfg.API.ListenAddress != "" {
		s.logger.Info("Starting HTTP API server", "address", s.cfg.API.ListenAddress)

		router := s.buildRouter()

		s.httpServer = &http.Server{
			Addr:         s.cfg.API.ListenAddress,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("panic in HTTP server goroutine", "recover", r)
				}
			}()
			if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				s.logger.Error("HTTP server failed", "error", err)
			}
			s.logger.Info("HTTP server stopped")
		}()
	}

	return nil
}

// buildRouter assembles the Chi router, the Huma API, and the WebSocket
// endpoint. Split out so tests can exercise the full HTTP surface without
// binding a port.
func (s *Server) buildRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(mw.RequestLogging(s.logger))
	router.Use(mw.RateLimitByIP(mw.RateLimitConfig{RequestsPerMinute: s.cfg.API.RequestsPerMinute}))

	humaConfig := routes.NewHumaConfig(s.build.Version, "")
	api := humachi.New(router, humaConfig)

	routes.Register(api, &routes.Handlers{
		HealthCheck:  handlers.HealthCheck,
		VersionCheck: handlers.VersionCheck(s.build.Version, s.build.Commit, s.build.BuildDate),
		Room:         &handlers.RoomHandler{Rooms: s.rooms},
		Light:        &handlers.LightHandler{Lights: s.store, Control: s.rooms},
		Logging:      &handlers.LoggingHandler{Level: s.logLevel},
	})

	// The WebSocket hub broadcasts room and light events from the bus.
	wsHub := ws.NewHub(s.logger, s.eventBus)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("panic in WebSocket hub", "recover", r)
			}
		}()
		wsHub.Run(s.rootCtx)
	}()
	router.Get("/api/v1/ws", ws.Handler(wsHub, s.logger))

	return router
}

// importBridgeLights pulls the bridge's light inventory into the store.
func (s *Server) importBridgeLights(ctx context.Context) {
	infos, err := s.bridge.GetLights(ctx)
	if err != nil {
		s.logger.Warn("bridge light import failed", "error", err)
		return
	}
	for vendorID, info := range infos {
		l := light.Light{
			Name:        info.Name,
			Integration: light.IntegrationHue,
			VendorID:    vendorID,
			State: light.LightState{
				On:         info.State.On,
				Brightness: float64(info.State.Bri) / 254,
			},
		}
		saved, err := s.store.SaveLight(ctx, l)
		if err != nil {
			s.logger.Error("failed to save bridge light", "vendor_id", vendorID, "error", err)
			continue
		}
		s.eventBus.Publish(events.NewEvent(events.LightDiscovered, saved))
	}
	s.logger.Info("bridge lights imported", "count", len(infos))
}

// registerDiscoveredDevice saves an mDNS-discovered device into the store.
// Devices without a configured auth token are still recorded; commands to
// them will fail until a token is added to the config.
func (s *Server) registerDiscoveredDevice(d nanoleaf.Device) {
	l := light.Light{
		Name:        d.Name,
		Integration: light.IntegrationNanoleaf,
		VendorID:    d.ID,
		Address:     d.Address,
		Token:       s.cfg.Nanoleaf.Tokens[d.ID],
	}
	saved, err := s.store.SaveLight(s.rootCtx, l)
	if err != nil {
		s.logger.Error("failed to save discovered device", "id", d.ID, "error", err)
		return
	}
	if l.Token == "" {
		s.logger.Warn("discovered device has no auth token configured", "id", d.ID, "name", d.Name)
	}
	s.eventBus.Publish(events.NewEvent(events.LightDiscovered, saved))
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() {
	s.logger.Info("Shutting down wattsd server")
	s.rootCancel()

	if s.httpServer != nil {
		s.logger.Info("Shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("HTTP server shutdown failed", "error", err)
		}
	}

	s.logger.Info("Waiting for services to stop...")
	s.wg.Wait()

	if err := s.store.Close(); err != nil {
		s.logger.Error("store close failed", "error", err)
	}
	s.logger.Info("wattsd server shut down gracefully")
}
