package models

import "time"

// AuditLogEntry is an append-only record of a mutating action.
type AuditLogEntry struct {
	ID        uint      `gorm:"primaryKey"                          json:"id"`
	User      string    `gorm:"column:user;size:100;not null;index" json:"user"`
	Action    string    `gorm:"size:100;not null"                   json:"action"`
	Timestamp time.Time `gorm:"not null;index"                      json:"timestamp"`
	Details   string    `gorm:"type:text"                           json:"details"`
}

func (AuditLogEntry) TableName() string { return "audit_log" }
