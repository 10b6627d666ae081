package repositories

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/cafedesk/app/models"
)

// AuditRepository appends to and reads the audit log. It never updates or
// deletes rows.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append stores entry with its timestamp normalised to UTC so range
// queries compare like with like on every driver.
func (r *AuditRepository) Append(entry *models.AuditLogEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Timestamp = entry.Timestamp.UTC()
	return r.db.Create(entry).Error
}

// Between returns entries with from <= timestamp <= to, newest first. A nil
// bound is open.
func (r *AuditRepository) Between(from, to *time.Time) ([]models.AuditLogEntry, error) {
	q := r.db.Model(&models.AuditLogEntry{})
	if from != nil {
		q = q.Where(clause.Gte{Column: clause.Column{Name: "timestamp"}, Value: from.UTC()})
	}
	if to != nil {
		q = q.Where(clause.Lte{Column: clause.Column{Name: "timestamp"}, Value: to.UTC()})
	}

	var out []models.AuditLogEntry
	err := q.Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Order("id desc").
		Find(&out).Error
	return out, err
}
