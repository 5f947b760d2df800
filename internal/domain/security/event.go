package security

import (
	"time"

	"github.com/google/uuid"
)

// Severity classifies a security event
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Event is an entry in the tenant's security/compliance audit trail
type Event struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"` // login, export, settings_change, ...
	Resource  string    `json:"resource"`
	Severity  Severity  `json:"severity"`
	IPAddress string    `json:"ipAddress"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewEvent records an audit event happening now
func NewEvent(tenantID, actor, action string, severity Severity) *Event {
	return &Event{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Actor:     actor,
		Action:    action,
		Severity:  severity,
		CreatedAt: time.Now(),
	}
}
