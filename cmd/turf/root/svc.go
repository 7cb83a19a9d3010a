package root

import (
	"context"
	"fmt"

	"turf/internal/catalog"
	"turf/internal/config"
	"turf/internal/engine"
	"turf/internal/platform"
	"turf/internal/storage"
)

// openService wires the whole stack: config, local SQLite store, optional
// cloud mirror, identity, then bootstraps the engine (load, reconcile,
// rollover). The cleanup flushes pending mirrors and closes the database.
func openService(ctx context.Context) (*engine.Service, []catalog.District, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	districts, err := catalog.Districts("")
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}

	var cloud platform.CloudStore
	if cfg.CloudPath != "" {
		cloud = platform.NewFileCloud(cfg.CloudPath)
	}
	var identity platform.Identity
	if cfg.UserName != "" {
		identity = platform.StaticIdentity{User: &platform.User{Username: cfg.UserName}}
	}

	store := engine.NewStore(storage.NewBlobRepo(db), cloud, cfg.NoSync)
	svc := engine.NewService(engine.Params{
		Store:    store,
		Identity: identity,
		Haptics:  platform.NoopHaptics{},
		HomeLat:  cfg.HomeLat,
		HomeLon:  cfg.HomeLon,
	})
	if err := svc.Bootstrap(ctx); err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("bootstrap: %w", err)
	}

	cleanup := func() {
		store.Flush()
		_ = db.Close()
	}
	return svc, districts, cleanup, nil
}
