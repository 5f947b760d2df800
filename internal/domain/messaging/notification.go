package messaging

import (
	"time"

	"github.com/google/uuid"
)

// ChannelType enumerates supported delivery channels
type ChannelType string

const (
	ChannelEmail    ChannelType = "email"
	ChannelSMS      ChannelType = "sms"
	ChannelWhatsApp ChannelType = "whatsapp"
	ChannelPush     ChannelType = "push"
)

// DeliveryStatus tracks a notification through its delivery lifecycle
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
	DeliveryRead      DeliveryStatus = "read"
)

// Notification is a channel-scoped message to a dashboard user
type Notification struct {
	ID        string         `json:"id"`
	TenantID  string         `json:"tenantId"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Channel   ChannelType    `json:"channel"`
	Status    DeliveryStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	ReadAt    *time.Time     `json:"readAt,omitempty"`
}

// NewNotification creates a pending notification
func NewNotification(tenantID, title, message string, channel ChannelType) *Notification {
	return &Notification{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Title:     title,
		Message:   message,
		Channel:   channel,
		Status:    DeliveryPending,
		CreatedAt: time.Now(),
	}
}

// MarkRead transitions the notification to read
func (n *Notification) MarkRead(at time.Time) {
	n.Status = DeliveryRead
	n.ReadAt = &at
}

// IsUnread reports whether the notification has not been read yet
func (n *Notification) IsUnread() bool {
	return n.Status != DeliveryRead
}

// CommunicationChannel is the configuration record for one delivery channel
type CommunicationChannel struct {
	ID       string            `json:"id"`
	TenantID string            `json:"tenantId"`
	Name     string            `json:"name"`
	Type     ChannelType       `json:"type"`
	Enabled  bool              `json:"enabled"`
	Config   map[string]string `json:"config"`
}
