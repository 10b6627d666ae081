// Package kernel wires configuration, the database, storage and the domain
// services into one value the CLI commands share.
package kernel

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/app/listeners"
	"github.com/shashiranjanraj/cafedesk/app/services"
	"github.com/shashiranjanraj/cafedesk/config"
	"github.com/shashiranjanraj/cafedesk/pkg/database"
	"github.com/shashiranjanraj/cafedesk/pkg/event"
	"github.com/shashiranjanraj/cafedesk/pkg/logger"
	"github.com/shashiranjanraj/cafedesk/pkg/runid"
	"github.com/shashiranjanraj/cafedesk/pkg/storage"
)

// Options are the settings New needs. Boot fills them from config.
type Options struct {
	Driver               string
	DSN                  string
	JWTSecret            string
	RestoreStockOnCancel bool
	LowStockThreshold    float64
	WarnStockThreshold   float64
	BackupDir            string
	BackupKeep           int
}

// OptionsFromConfig reads Options from the loaded configuration.
func OptionsFromConfig() Options {
	return Options{
		Driver:               config.DatabaseDriver(),
		DSN:                  config.DatabaseDSN(),
		JWTSecret:            config.JWTSecret(),
		RestoreStockOnCancel: config.RestoreStockOnCancel(),
		LowStockThreshold:    config.LowStockThreshold(),
		WarnStockThreshold:   config.WarnStockThreshold(),
		BackupDir:            config.BackupDir(),
		BackupKeep:           config.BackupKeep(),
	}
}

// Kernel holds the process-wide collaborators.
type Kernel struct {
	Options Options
	DB      *gorm.DB
	Bus     *event.Bus
	Log     *slog.Logger

	Audit     *services.AuditRecorder
	Auth      *services.AuthService
	Orders    *services.OrderService
	Recipes   *services.RecipeService
	Inventory *services.InventoryService
	Menu      *services.MenuService
	Users     *services.UserService
	Reports   *services.ReportService
	Backup    *services.BackupService
}

// Boot loads config, opens the database and the default storage disk and
// builds the services.
func Boot(ctx context.Context) (*Kernel, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("kernel: config: %w", err)
	}
	log := logger.New(config.AppEnv(), config.LogLevel(), os.Stderr)
	opts := OptionsFromConfig()

	db, err := database.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}

	disks := storage.Connect(ctx)
	disk, err := disks.Default()
	if err != nil {
		log.Warn("storage: default disk unavailable, using local", "disk", config.StorageDefault(), "error", err)
		disk = storage.NewLocal(config.StorageLocalRoot())
	}

	return New(db, disk, log, opts), nil
}

// New builds a Kernel around an open database and a backup disk.
func New(db *gorm.DB, disk storage.Disk, log *slog.Logger, opts Options) *Kernel {
	bus := event.New()
	listeners.Register(bus)

	audit := services.NewAuditRecorder(db)
	orders := services.NewOrderService(db, audit, bus, services.OrderOptions{RestoreStockOnCancel: opts.RestoreStockOnCancel})
	inventory := services.NewInventoryService(db, audit, bus, services.InventoryOptions{
		LowThreshold:  opts.LowStockThreshold,
		WarnThreshold: opts.WarnStockThreshold,
	})
	backup := services.NewBackupService(disk, audit, services.BackupOptions{Dir: opts.BackupDir, Keep: opts.BackupKeep})

	return &Kernel{
		Options: opts,
		DB:      db,
		Bus:     bus,
		Log:     log,

		Audit:     audit,
		Auth:      services.NewAuthService(db, audit, []byte(opts.JWTSecret)),
		Orders:    orders,
		Recipes:   services.NewRecipeService(db, audit, bus),
		Inventory: inventory,
		Menu:      services.NewMenuService(db, audit, bus),
		Users:     services.NewUserService(db, audit),
		Reports:   services.NewReportService(db),
		Backup:    backup,
	}
}

// Context tags ctx with a run ID on first use and attaches a logger
// carrying that ID plus attrs.
func (k *Kernel) Context(ctx context.Context, attrs ...any) context.Context {
	log := logger.WithCtx(ctx)
	if runid.FromCtx(ctx) == "" {
		id := runid.New()
		ctx = runid.WithValue(ctx, id)
		log = k.Log.With(runid.LogKey, id)
	}
	if len(attrs) > 0 {
		log = log.With(attrs...)
	}
	return logger.InjectLogger(ctx, log)
}

// RunBackup backs up the database the kernel is connected to.
func (k *Kernel) RunBackup(ctx context.Context, caller string) services.BackupReport {
	return k.Backup.Run(k.Context(ctx), caller, k.Options.Driver, k.Options.DSN)
}

// Close releases the database connection.
func (k *Kernel) Close() error {
	return database.Close(k.DB)
}
