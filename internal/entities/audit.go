package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditEventType string

const (
	AuditEventCreate AuditEventType = "create"
	AuditEventUpdate AuditEventType = "update"
	AuditEventDelete AuditEventType = "delete"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

type AuditEvent struct {
	ID          string         `gorm:"primaryKey;size:36" json:"_id" bson:"_id,omitempty"`
	EventType   AuditEventType `gorm:"index;size:20" json:"eventType" bson:"eventType"`
	Action      string         `gorm:"size:100" json:"action" bson:"action"`           // e.g., "member_create", "book_delete"
	Description string         `gorm:"size:500" json:"description" bson:"description"` // Human-readable summary
	EntityType  string         `gorm:"index;size:50" json:"entityType" bson:"entityType"`
	EntityID    string         `gorm:"index;size:36" json:"entityId,omitempty" bson:"entityId,omitempty"`
	IPAddress   string         `gorm:"size:45" json:"ipAddress,omitempty" bson:"ipAddress,omitempty"`
	UserAgent   string         `gorm:"size:500" json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	Status      AuditStatus    `gorm:"size:20" json:"status" bson:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"errorMsg,omitempty" bson:"errorMsg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt" bson:"createdAt"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}

func (e *AuditEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
