package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"go.uber.org/zap"

	"github.com/bizdash/bizdash/internal/validate"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Store holds the live settings document for one tenant session. It is
// constructed once and shared by reference. Reads return copies; updates
// patch a section, then persist synchronously. A failed save is logged and
// the in-memory state keeps the update, so memory can run ahead of storage
// until the next successful save.
type Store struct {
	mu      sync.RWMutex
	current Settings
	storage Storage
	logger  *zap.Logger
}

// StoreOption is a functional option for configuring the store
type StoreOption func(*Store)

// WithStoreLogger sets the logger for the store
func WithStoreLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore builds a store over the given storage backend. The persisted
// document, when present, is deep-merged over the defaults: recognized
// fields take the persisted value, map-valued sections keep keys the
// current build does not know about, and unrecognized top-level fields are
// dropped. A corrupt document falls back to defaults.
func NewStore(storage Storage, opts ...StoreOption) *Store {
	s := &Store{
		current: Defaults(),
		storage: storage,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := storage.Load()
	switch {
	case errors.Is(err, ErrNotPersisted):
		// First run, defaults stand.
	case err != nil:
		s.logger.Warn("failed to load persisted settings, using defaults",
			zap.Error(err))
	default:
		merged := Defaults()
		if err := json.Unmarshal(data, &merged); err != nil {
			s.logger.Warn("persisted settings are corrupt, using defaults",
				zap.Error(err))
		} else {
			s.current = merged
		}
	}
	return s
}

// Get returns a copy of the current document
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSettings(s.current)
}

// GeneralPatch carries the fields of a general-section update. Nil fields
// are left unchanged.
type GeneralPatch struct {
	CompanyName  *string `json:"companyName,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
	Address      *string `json:"address,omitempty"`
	GST          *string `json:"gst,omitempty"`
	PAN          *string `json:"pan,omitempty"`
	Timezone     *string `json:"timezone,omitempty"`
	Currency     *string `json:"currency,omitempty"`
	DateFormat   *string `json:"dateFormat,omitempty"`
}

// UpdateGeneral patches the general section and persists
func (s *Store) UpdateGeneral(p GeneralPatch) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := &s.current.General
	setString(&g.CompanyName, p.CompanyName)
	setString(&g.ContactEmail, p.ContactEmail)
	setString(&g.ContactPhone, p.ContactPhone)
	setString(&g.Address, p.Address)
	setString(&g.GST, p.GST)
	setString(&g.PAN, p.PAN)
	setString(&g.Timezone, p.Timezone)
	setString(&g.Currency, p.Currency)
	setString(&g.DateFormat, p.DateFormat)

	s.persistLocked()
	return cloneSettings(s.current)
}

// BrandingPatch carries the fields of a branding-section update
type BrandingPatch struct {
	PrimaryColor   *string `json:"primaryColor,omitempty"`
	SecondaryColor *string `json:"secondaryColor,omitempty"`
	LogoURL        *string `json:"logoUrl,omitempty"`
	DisplayName    *string `json:"displayName,omitempty"`
}

// UpdateBranding patches the branding section and persists
func (s *Store) UpdateBranding(p BrandingPatch) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := &s.current.Branding
	setString(&b.PrimaryColor, p.PrimaryColor)
	setString(&b.SecondaryColor, p.SecondaryColor)
	setString(&b.LogoURL, p.LogoURL)
	setString(&b.DisplayName, p.DisplayName)

	s.persistLocked()
	return cloneSettings(s.current)
}

// NotificationsPatch carries the fields of a notifications-section update
type NotificationsPatch struct {
	EmailEnabled    *bool   `json:"emailEnabled,omitempty"`
	SMSEnabled      *bool   `json:"smsEnabled,omitempty"`
	PushEnabled     *bool   `json:"pushEnabled,omitempty"`
	DigestFrequency *string `json:"digestFrequency,omitempty"`
}

// UpdateNotifications patches the notifications section and persists
func (s *Store) UpdateNotifications(p NotificationsPatch) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := &s.current.Notifications
	setBool(&n.EmailEnabled, p.EmailEnabled)
	setBool(&n.SMSEnabled, p.SMSEnabled)
	setBool(&n.PushEnabled, p.PushEnabled)
	setString(&n.DigestFrequency, p.DigestFrequency)

	s.persistLocked()
	return cloneSettings(s.current)
}

// PasswordPolicyPatch patches the policy nested inside the security section
type PasswordPolicyPatch struct {
	MinLength        *int  `json:"minLength,omitempty"`
	RequireUppercase *bool `json:"requireUppercase,omitempty"`
	RequireNumber    *bool `json:"requireNumber,omitempty"`
	RequireSymbol    *bool `json:"requireSymbol,omitempty"`
}

// SecurityPatch carries the fields of a security-section update. The
// password policy merges one level deeper instead of being replaced whole.
type SecurityPatch struct {
	SessionTimeoutMinutes *int                 `json:"sessionTimeoutMinutes,omitempty"`
	TwoFactorRequired     *bool                `json:"twoFactorRequired,omitempty"`
	PasswordPolicy        *PasswordPolicyPatch `json:"passwordPolicy,omitempty"`
}

// UpdateSecurity patches the security section and persists
func (s *Store) UpdateSecurity(p SecurityPatch) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec := &s.current.Security
	setInt(&sec.SessionTimeoutMinutes, p.SessionTimeoutMinutes)
	setBool(&sec.TwoFactorRequired, p.TwoFactorRequired)
	if p.PasswordPolicy != nil {
		pol := &sec.PasswordPolicy
		setInt(&pol.MinLength, p.PasswordPolicy.MinLength)
		setBool(&pol.RequireUppercase, p.PasswordPolicy.RequireUppercase)
		setBool(&pol.RequireNumber, p.PasswordPolicy.RequireNumber)
		setBool(&pol.RequireSymbol, p.PasswordPolicy.RequireSymbol)
	}

	s.persistLocked()
	return cloneSettings(s.current)
}

// UpdateIntegrations merges the given keys into the integrations section.
// An empty value removes the key.
func (s *Store) UpdateIntegrations(patch map[string]string) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Integrations == nil {
		s.current.Integrations = Integrations{}
	}
	for key, value := range patch {
		if value == "" {
			delete(s.current.Integrations, key)
			continue
		}
		s.current.Integrations[key] = value
	}

	s.persistLocked()
	return cloneSettings(s.current)
}

// IsFeatureEnabled reports whether a feature module is switched on.
// Unknown modules are off.
func (s *Store) IsFeatureEnabled(module string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Features.Modules[module]
}

// EnableFeature switches a feature module on and persists
func (s *Store) EnableFeature(module string) {
	s.setFeature(module, true)
}

// DisableFeature switches a feature module off and persists
func (s *Store) DisableFeature(module string) {
	s.setFeature(module, false)
}

func (s *Store) setFeature(module string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Features.Modules == nil {
		s.current.Features.Modules = make(map[string]bool)
	}
	s.current.Features.Modules[module] = enabled
	s.persistLocked()
}

// Reset restores the defaults and persists them
func (s *Store) Reset() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Defaults()
	s.persistLocked()
	return cloneSettings(s.current)
}

// Validate returns advisory violations against the current document. It
// never blocks an update; callers surface the messages as warnings.
func (s *Store) Validate() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var violations []string
	if s.current.General.CompanyName == "" {
		violations = append(violations, "company name must not be empty")
	}
	if email := s.current.General.ContactEmail; email != "" && !emailPattern.MatchString(email) {
		violations = append(violations, fmt.Sprintf("contact email %q is not a valid address", email))
	}
	if gst := s.current.General.GST; gst != "" && !validate.GST(gst) {
		violations = append(violations, fmt.Sprintf("GST number %q is not a valid GSTIN", gst))
	}
	if pan := s.current.General.PAN; pan != "" && !validate.PAN(pan) {
		violations = append(violations, fmt.Sprintf("PAN %q is not valid", pan))
	}
	if s.current.Security.PasswordPolicy.MinLength < 6 {
		violations = append(violations, "password minimum length below 6 is not recommended")
	}
	if color := s.current.Branding.PrimaryColor; !validate.HexColor(color) {
		violations = append(violations, fmt.Sprintf("primary color %q is not a #rrggbb value", color))
	}
	return violations
}

// persistLocked saves the current document; the caller holds the write lock
func (s *Store) persistLocked() {
	data, err := json.Marshal(s.current)
	if err != nil {
		s.logger.Error("failed to encode settings", zap.Error(err))
		return
	}
	if err := s.storage.Save(data); err != nil {
		s.logger.Warn("failed to persist settings; in-memory state now diverges from storage",
			zap.Error(err))
	}
}

func cloneSettings(in Settings) Settings {
	out := in
	out.Integrations = make(Integrations, len(in.Integrations))
	for k, v := range in.Integrations {
		out.Integrations[k] = v
	}
	out.Features.Modules = make(map[string]bool, len(in.Features.Modules))
	for k, v := range in.Features.Modules {
		out.Features.Modules[k] = v
	}
	return out
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
