package crm

import (
	"strings"
	"time"

	"github.com/bizdash/bizdash/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientStatus represents the lifecycle status of a client
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// Client represents an onboarded client record. Alias fields (Name, Phone,
// Email, CreatedAt) mirror their backend counterparts for presentation
// purposes and must always equal them at read time; SyncAliases restores the
// invariant after any decode or mutation.
type Client struct {
	ID            string       `json:"id" gorm:"type:varchar(36);primaryKey"`
	TenantID      string       `json:"tenantId" gorm:"type:varchar(36);index"`
	ClientName    string       `json:"clientName" gorm:"type:varchar(200);not null"`
	ClientContact string       `json:"clientContact" gorm:"type:varchar(50)"`
	ClientEmail   string       `json:"clientEmail" gorm:"type:varchar(200);index"`
	Address       string       `json:"address" gorm:"type:text"`
	GST           string       `json:"gst" gorm:"type:varchar(15)"`
	PAN           string       `json:"pan" gorm:"type:varchar(10)"`
	Status        ClientStatus `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	EntryDate     time.Time    `json:"entryDate"`

	// Read-only aliases of the backend fields above.
	Name      string    `json:"name" gorm:"-"`
	Phone     string    `json:"phone" gorm:"-"`
	Email     string    `json:"email" gorm:"-"`
	CreatedAt time.Time `json:"createdAt" gorm:"-"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a client with required fields and synced aliases
func NewClient(tenantID, name, contact, email string) (*Client, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}

	c := &Client{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		ClientName:    name,
		ClientContact: contact,
		ClientEmail:   email,
		Status:        ClientStatusActive,
		EntryDate:     time.Now(),
	}
	c.SyncAliases()
	return c, nil
}

// SyncAliases copies the backend fields into their presentation aliases
func (c *Client) SyncAliases() {
	c.Name = c.ClientName
	c.Phone = c.ClientContact
	c.Email = c.ClientEmail
	c.CreatedAt = c.EntryDate
}

// AliasesInSync reports whether every alias equals its backend counterpart
func (c *Client) AliasesInSync() bool {
	return c.Name == c.ClientName &&
		c.Phone == c.ClientContact &&
		c.Email == c.ClientEmail &&
		c.CreatedAt.Equal(c.EntryDate)
}

// IsActive reports whether the client is active
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}

// Deactivate marks the client inactive
func (c *Client) Deactivate() {
	c.Status = ClientStatusInactive
}
