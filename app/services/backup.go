package services

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/shashiranjanraj/cafedesk/pkg/database"
	"github.com/shashiranjanraj/cafedesk/pkg/logger"
	"github.com/shashiranjanraj/cafedesk/pkg/metrics"
	"github.com/shashiranjanraj/cafedesk/pkg/storage"
)

// Backup outcomes.
const (
	BackupOK      = "ok"
	BackupSkipped = "skipped"
	BackupFailed  = "failed"
)

const (
	backupPrefix     = "cafedb_backup_"
	backupSuffix     = ".sqlite"
	backupTimeLayout = "20060102_150405"
)

// BackupReport describes one backup attempt.
type BackupReport struct {
	Status string
	Path   string
	Size   int64
	Pruned []string
	Reason string
	Err    error
}

// BackupOptions configures BackupService.
type BackupOptions struct {
	Dir string
	// Keep is how many backups survive pruning; zero keeps all.
	Keep int
}

// BackupService copies the sqlite database file to a storage disk.
type BackupService struct {
	disk  storage.Disk
	audit *AuditRecorder
	opts  BackupOptions
	now   func() time.Time
}

func NewBackupService(disk storage.Disk, audit *AuditRecorder, opts BackupOptions) *BackupService {
	return &BackupService{disk: disk, audit: audit, opts: opts, now: time.Now}
}

// Run backs up the database behind driver and dsn. It never fails the
// caller: problems are logged, counted and returned in the report.
func (s *BackupService) Run(ctx context.Context, caller, driver, dsn string) BackupReport {
	defer metrics.ObserveOperation("backup.run", time.Now())
	log := logger.WithCtx(ctx)

	report := s.run(ctx, driver, dsn)
	metrics.Backups.WithLabelValues(report.Status).Inc()

	switch report.Status {
	case BackupOK:
		log.Info("backup written", "path", report.Path, "bytes", report.Size, "pruned", len(report.Pruned))
		if s.audit != nil {
			s.audit.Record(ctx, caller, ActionBackupCompleted, fmt.Sprintf("Backup %s (%d bytes)", report.Path, report.Size))
		}
	case BackupSkipped:
		log.Debug("backup skipped", "reason", report.Reason)
	default:
		log.Warn("backup failed", "error", report.Err)
	}
	return report
}

func (s *BackupService) run(ctx context.Context, driver, dsn string) BackupReport {
	if driver != "sqlite" {
		return BackupReport{Status: BackupSkipped, Reason: fmt.Sprintf("driver %s is backed up by the database server", driver)}
	}
	file, ok := database.SQLiteFile(dsn)
	if !ok {
		return BackupReport{Status: BackupSkipped, Reason: "in-memory database"}
	}

	src, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return BackupReport{Status: BackupSkipped, Reason: fmt.Sprintf("database file %s does not exist yet", file)}
		}
		return BackupReport{Status: BackupFailed, Err: fmt.Errorf("backup: open %s: %w", file, err)}
	}
	defer src.Close()

	name := path.Join(s.opts.Dir, backupPrefix+s.now().Format(backupTimeLayout)+backupSuffix)
	if err := s.disk.PutStream(ctx, name, src); err != nil {
		return BackupReport{Status: BackupFailed, Err: fmt.Errorf("backup: write %s: %w", name, err)}
	}

	report := BackupReport{Status: BackupOK, Path: name}
	if size, err := s.disk.Size(ctx, name); err == nil {
		report.Size = size
	}

	pruned, err := s.prune(ctx)
	if err != nil {
		logger.WithCtx(ctx).Warn("backup: prune", "error", err)
	}
	report.Pruned = pruned
	return report
}

// prune removes the oldest backups beyond Keep.
func (s *BackupService) prune(ctx context.Context) ([]string, error) {
	if s.opts.Keep <= 0 {
		return nil, nil
	}
	existing, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) <= s.opts.Keep {
		return nil, nil
	}

	var pruned []string
	for _, p := range existing[:len(existing)-s.opts.Keep] {
		if err := s.disk.Delete(ctx, p); err != nil {
			return pruned, err
		}
		pruned = append(pruned, p)
	}
	return pruned, nil
}

// List returns existing backup paths, oldest first.
func (s *BackupService) List(ctx context.Context) ([]string, error) {
	files, err := s.disk.Files(ctx, s.opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("backup: list: %w", err)
	}
	var out []string
	for _, f := range files {
		base := path.Base(f)
		if strings.HasPrefix(base, backupPrefix) && strings.HasSuffix(base, backupSuffix) {
			out = append(out, f)
		}
	}
	return out, nil
}

// BackupFile describes one stored backup.
type BackupFile struct {
	Path     string
	Size     int64
	Modified time.Time
}

// Files returns the stored backups with their size and modification time,
// oldest first.
func (s *BackupService) Files(ctx context.Context) ([]BackupFile, error) {
	paths, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BackupFile, 0, len(paths))
	for _, p := range paths {
		size, err := s.disk.Size(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("backup: stat: %w", err)
		}
		modified, err := s.disk.LastModified(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("backup: stat: %w", err)
		}
		out = append(out, BackupFile{Path: p, Size: size, Modified: modified})
	}
	return out, nil
}
