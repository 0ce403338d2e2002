package cmd

import (
	"fmt"

	"delivery-reconciler/core/archive"
	"delivery-reconciler/core/config"
	"delivery-reconciler/core/database"
	"delivery-reconciler/core/ledger"
	"delivery-reconciler/core/logger"
	"delivery-reconciler/core/verify"
	"delivery-reconciler/feature/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles the wired application components shared by the server and
// the CLI subcommands.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	cache   *verify.Cache
	service *reconcile.Service
}

// newRuntime loads configuration and assembles the reconciliation stack:
// database, ledger client, verification cache and orchestrator.
func newRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := ledger.NewClient(cfg.Ledger)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger client: %w", err)
	}

	var store verify.EntryStore
	switch cfg.Cache.Store {
	case verify.StoreDatabase:
		store, err = verify.NewGormStore(db)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache store: %w", err)
		}
	case verify.StoreMemory, "":
		store = verify.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown cache store %q", cfg.Cache.Store)
	}

	cache, err := verify.NewCache(store, client, cfg.Cache, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create verification cache: %w", err)
	}

	var archiver *reconcile.Archiver
	if cfg.Archive.Enabled {
		storageClient, err := archive.NewClient(cfg.Archive)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive client: %w", err)
		}
		archiver = reconcile.NewArchiver(storageClient, cfg.Archive.Bucket)
	}

	service := reconcile.NewService(
		reconcile.NewGormDeliveryRepository(db),
		reconcile.NewGormConfigProvider(db),
		cache,
		archiver,
		l,
	)

	return &runtime{
		cfg:     cfg,
		logger:  l,
		db:      db,
		cache:   cache,
		service: service,
	}, nil
}
