// Package settings manages the tenant-wide configuration the dashboard
// edits: identity, branding, notification and security preferences, and
// the feature-module switches. The in-memory view is authoritative; every
// update is persisted through a pluggable Storage backend.
package settings

// General holds company identity and locale preferences
type General struct {
	CompanyName  string `json:"companyName"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Address      string `json:"address"`
	GST          string `json:"gst"`
	PAN          string `json:"pan"`
	Timezone     string `json:"timezone"`
	Currency     string `json:"currency"`
	DateFormat   string `json:"dateFormat"`
}

// Branding holds the visual identity settings
type Branding struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	LogoURL        string `json:"logoUrl"`
	DisplayName    string `json:"displayName"`
}

// Notifications holds delivery preferences
type Notifications struct {
	EmailEnabled    bool   `json:"emailEnabled"`
	SMSEnabled      bool   `json:"smsEnabled"`
	PushEnabled     bool   `json:"pushEnabled"`
	DigestFrequency string `json:"digestFrequency"`
}

// PasswordPolicy is nested one level below Security and patched one level
// deeper than the other sections
type PasswordPolicy struct {
	MinLength        int  `json:"minLength"`
	RequireUppercase bool `json:"requireUppercase"`
	RequireNumber    bool `json:"requireNumber"`
	RequireSymbol    bool `json:"requireSymbol"`
}

// Security holds session and password preferences
type Security struct {
	SessionTimeoutMinutes int            `json:"sessionTimeoutMinutes"`
	TwoFactorRequired     bool           `json:"twoFactorRequired"`
	PasswordPolicy        PasswordPolicy `json:"passwordPolicy"`
}

// Integrations holds external service hooks. Map-valued so unknown keys
// written by newer versions survive a load/save round trip.
type Integrations map[string]string

// Features holds the module switches. Modules maps module key to enabled.
type Features struct {
	Modules map[string]bool `json:"modules"`
}

// Settings is the complete persisted document
type Settings struct {
	General       General       `json:"general"`
	Branding      Branding      `json:"branding"`
	Notifications Notifications `json:"notifications"`
	Security      Security      `json:"security"`
	Integrations  Integrations  `json:"integrations"`
	Features      Features      `json:"features"`
}

// Defaults returns the built-in settings document. Loading merges the
// persisted state over a fresh copy of this.
func Defaults() Settings {
	return Settings{
		General: General{
			CompanyName: "My Business",
			Timezone:    "Asia/Kolkata",
			Currency:    "INR",
			DateFormat:  "DD/MM/YYYY",
		},
		Branding: Branding{
			PrimaryColor:   "#2563eb",
			SecondaryColor: "#9333ea",
		},
		Notifications: Notifications{
			EmailEnabled:    true,
			PushEnabled:     true,
			DigestFrequency: "daily",
		},
		Security: Security{
			SessionTimeoutMinutes: 30,
			PasswordPolicy: PasswordPolicy{
				MinLength:     8,
				RequireNumber: true,
			},
		},
		Integrations: Integrations{},
		Features: Features{
			Modules: map[string]bool{
				"clients":        true,
				"orders":         true,
				"leads":          true,
				"finance":        true,
				"hr":             true,
				"documents":      true,
				"communications": true,
				"analytics":      true,
				"security":       false,
			},
		},
	}
}
