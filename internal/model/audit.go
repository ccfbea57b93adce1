package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditAction is what was done to a user account.
type AuditAction string

const (
	AuditCreate        AuditAction = "CREATE"
	AuditUpdate        AuditAction = "UPDATE"
	AuditDelete        AuditAction = "DELETE"
	AuditResetPassword AuditAction = "RESET_PASSWORD"
)

// UserAudit is an append-only record of a mutation to a user account.
// UserID carries no foreign key: rows outlive the user they describe.
type UserAudit struct {
	ID        string            `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    string            `json:"userId" gorm:"type:char(36);not null;index"`
	ActorID   *string           `json:"actorId" gorm:"type:char(36);index"`
	Action    AuditAction       `json:"action" gorm:"type:varchar(20);not null;index"`
	Details   datatypes.JSONMap `json:"details,omitempty"`
	Timestamp time.Time         `json:"timestamp" gorm:"column:occurred_at;not null;index"`
}

// TableName keeps the table name stable regardless of naming strategy.
func (UserAudit) TableName() string {
	return "user_audits"
}

// BeforeCreate sets UUID and timestamp before creating the record.
func (a *UserAudit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	return nil
}
