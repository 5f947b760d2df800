package content

import (
	"time"

	"github.com/google/uuid"
)

// DocumentShare records a grant of access to a stored document
type DocumentShare struct {
	ID         string    `json:"id"`
	SharedWith string    `json:"sharedWith"`
	Permission string    `json:"permission"` // view or edit
	SharedAt   time.Time `json:"sharedAt"`
}

// DocumentVersion records one revision of a stored document
type DocumentVersion struct {
	ID        string    `json:"id"`
	Version   int       `json:"version"`
	FileSize  int64     `json:"file_size"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document is a stored-file record; only metadata lives here, the bytes
// belong to the unseen backend
type Document struct {
	ID         string            `json:"id"`
	TenantID   string            `json:"tenantId"`
	Name       string            `json:"name"`
	Type       string            `json:"type"`     // pdf, docx, xlsx, ...
	Category   string            `json:"category"` // contract, invoice, report, ...
	FileSize   int64             `json:"file_size"`
	TemplateID string            `json:"template_id,omitempty"`
	UploadedBy string            `json:"uploadedBy"`
	Shares     []DocumentShare   `json:"shares"`
	Versions   []DocumentVersion `json:"versions"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// NewDocument creates a document metadata record
func NewDocument(tenantID, name, docType, category string, size int64) *Document {
	return &Document{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		Type:      docType,
		Category:  category,
		FileSize:  size,
		CreatedAt: time.Now(),
	}
}

// LatestVersion returns the highest version number, zero when unversioned
func (d *Document) LatestVersion() int {
	latest := 0
	for _, v := range d.Versions {
		if v.Version > latest {
			latest = v.Version
		}
	}
	return latest
}

// Template is a reusable document or message blueprint
type Template struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Name      string    `json:"name"`
	Channel   string    `json:"channel"` // email, sms, whatsapp, document
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Variables []string  `json:"variables"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}
