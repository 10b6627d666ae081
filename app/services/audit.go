package services

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafedesk/app/models"
	"github.com/shashiranjanraj/cafedesk/app/repositories"
	"github.com/shashiranjanraj/cafedesk/pkg/logger"
	"github.com/shashiranjanraj/cafedesk/pkg/metrics"
)

// Audit actions.
const (
	ActionOrderCreated    = "order.created"
	ActionOrderPaid       = "order.paid"
	ActionOrderCancelled  = "order.cancelled"
	ActionRecipeSaved     = "recipe.saved"
	ActionStockUpdated    = "stock.updated"
	ActionDishAdded       = "menu.dish_added"
	ActionDishUpdated     = "menu.dish_updated"
	ActionDishDeleted     = "menu.dish_deleted"
	ActionUserCreated     = "users.created"
	ActionUserRoleChanged = "users.role_changed"
	ActionPasswordChanged = "users.password_changed"
	ActionUserDeleted     = "users.deleted"
	ActionLogin           = "session.login"
	ActionBackupCompleted = "backup.completed"
)

const auditSavepoint = "audit_entry"

// AuditRecorder appends to the audit log. Write failures are logged and
// counted, never returned.
type AuditRecorder struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAuditRecorder(db *gorm.DB) *AuditRecorder {
	return &AuditRecorder{db: db, now: time.Now}
}

// Record writes an entry in its own statement.
func (a *AuditRecorder) Record(ctx context.Context, user, action, details string) {
	entry := a.entry(user, action, details)
	if err := repositories.NewAuditRepository(a.db.WithContext(ctx)).Append(&entry); err != nil {
		a.failed(ctx, entry, err)
		return
	}
	metrics.AuditWrites.WithLabelValues("ok").Inc()
}

// RecordTx writes an entry inside tx under a savepoint: a failed insert rolls
// back only itself and leaves tx usable.
func (a *AuditRecorder) RecordTx(ctx context.Context, tx *gorm.DB, user, action, details string) {
	entry := a.entry(user, action, details)

	if err := tx.SavePoint(auditSavepoint).Error; err != nil {
		a.failed(ctx, entry, err)
		return
	}
	if err := repositories.NewAuditRepository(tx).Append(&entry); err != nil {
		if rbErr := tx.RollbackTo(auditSavepoint).Error; rbErr != nil {
			logger.WithCtx(ctx).Error("audit: rollback to savepoint", "error", rbErr)
		}
		a.failed(ctx, entry, err)
		return
	}
	metrics.AuditWrites.WithLabelValues("ok").Inc()
}

// Between returns entries whose timestamp falls inside the calendar days
// from..to, both inclusive, newest first. Nil bounds are open.
func (a *AuditRecorder) Between(ctx context.Context, from, to *time.Time) ([]models.AuditLogEntry, error) {
	var lo, hi *time.Time
	if from != nil {
		start := startOfDay(*from)
		lo = &start
	}
	if to != nil {
		end := startOfDay(*to).AddDate(0, 0, 1).Add(-time.Nanosecond)
		hi = &end
	}
	if lo != nil && hi != nil && lo.After(*hi) {
		return nil, invalid("from", "The from date must not be after the to date.")
	}

	entries, err := repositories.NewAuditRepository(a.db.WithContext(ctx)).Between(lo, hi)
	if err != nil {
		return nil, persist("audit.between", err)
	}
	for i := range entries {
		entries[i].Timestamp = entries[i].Timestamp.Local()
	}
	return entries, nil
}

func (a *AuditRecorder) entry(user, action, details string) models.AuditLogEntry {
	return models.AuditLogEntry{User: user, Action: action, Details: details, Timestamp: a.now()}
}

func (a *AuditRecorder) failed(ctx context.Context, entry models.AuditLogEntry, err error) {
	metrics.AuditWrites.WithLabelValues("failed").Inc()
	logger.WithCtx(ctx).Warn("audit: write failed",
		slog.String("action", entry.Action),
		slog.String("user", entry.User),
		slog.String("details", entry.Details),
		slog.Any("error", err),
	)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
