package crm

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatus represents the sales-funnel stage of a lead
type LeadStatus string

const (
	LeadStatusNew           LeadStatus = "new"
	LeadStatusCallFollowup  LeadStatus = "call_followup"
	LeadStatusUnreachable   LeadStatus = "unreachable"
	LeadStatusUnqualified   LeadStatus = "unqualified"
	LeadStatusConvert       LeadStatus = "convert"
	LeadStatusReadyForQuote LeadStatus = "ready_for_quote"
)

// LeadPriority represents the triage priority of a lead
type LeadPriority string

const (
	LeadPriorityLow    LeadPriority = "low"
	LeadPriorityMedium LeadPriority = "medium"
	LeadPriorityHigh   LeadPriority = "high"
)

// Lead represents a sales-funnel record. FollowupDate and FollowupTime are
// kept as the wire strings the dashboard edits ("2006-01-02" / "15:04");
// DueBy interprets the pair.
type Lead struct {
	ID                    string       `json:"id" gorm:"type:varchar(36);primaryKey"`
	TenantID              string       `json:"tenantId" gorm:"type:varchar(36);index"`
	Name                  string       `json:"name" gorm:"type:varchar(200);not null"`
	Contact               string       `json:"contact" gorm:"type:varchar(50)"`
	Email                 string       `json:"email" gorm:"type:varchar(200)"`
	Source                string       `json:"source" gorm:"type:varchar(100)"`
	Status                LeadStatus   `json:"status" gorm:"type:varchar(20);not null;default:'new'"`
	Priority              LeadPriority `json:"priority" gorm:"type:varchar(10);not null;default:'medium'"`
	LeadScore             int          `json:"leadScore"`
	ConversionProbability float64      `json:"conversionProbability"`
	FollowupDate          string       `json:"followupDate" gorm:"type:varchar(10)"`
	FollowupTime          string       `json:"followupTime" gorm:"type:varchar(5)"`
	Notes                 string       `json:"notes" gorm:"type:text"`
	CreatedAt             time.Time    `json:"createdAt"`
}

// TableName returns the table name for GORM
func (Lead) TableName() string {
	return "leads"
}

// NewLead creates a lead in the initial funnel stage
func NewLead(tenantID, name, contact string) *Lead {
	return &Lead{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		Contact:   contact,
		Status:    LeadStatusNew,
		Priority:  LeadPriorityMedium,
		CreatedAt: time.Now(),
	}
}

// followupLayout is the combined wire format of the followup pair
const followupLayout = "2006-01-02 15:04"

// FollowupAt parses the followup date/time pair in the given location.
// The second return value is false when no followup is scheduled or the
// stored strings do not parse.
func (l *Lead) FollowupAt(loc *time.Location) (time.Time, bool) {
	if l.FollowupDate == "" {
		return time.Time{}, false
	}
	clock := l.FollowupTime
	if clock == "" {
		clock = "09:00"
	}
	t, err := time.ParseInLocation(followupLayout, l.FollowupDate+" "+clock, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DueBy reports whether the lead has a followup scheduled at or before now
// and is still in a stage where a reminder makes sense.
func (l *Lead) DueBy(now time.Time) bool {
	if l.Status != LeadStatusNew && l.Status != LeadStatusCallFollowup {
		return false
	}
	at, ok := l.FollowupAt(now.Location())
	if !ok {
		return false
	}
	return !at.After(now)
}

// IsOpen reports whether the lead is still being worked
func (l *Lead) IsOpen() bool {
	switch l.Status {
	case LeadStatusUnqualified, LeadStatusConvert:
		return false
	}
	return true
}
