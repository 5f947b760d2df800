package settings

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }
func intp(n int) *int       { return &n }

// failingStorage loads fine but refuses every save
type failingStorage struct {
	loaded []byte
	saves  int
}

func (f *failingStorage) Load() ([]byte, error) {
	if f.loaded == nil {
		return nil, ErrNotPersisted
	}
	return f.loaded, nil
}

func (f *failingStorage) Save([]byte) error {
	f.saves++
	return errors.New("disk full")
}

func TestStoreDefaults(t *testing.T) {
	s := NewStore(NewMemoryStorage())
	got := s.Get()

	assert.Equal(t, "My Business", got.General.CompanyName)
	assert.Equal(t, "INR", got.General.Currency)
	assert.Equal(t, "#2563eb", got.Branding.PrimaryColor)
	assert.True(t, got.Features.Modules["clients"])
	assert.False(t, got.Features.Modules["security"])
}

func TestStoreGetReturnsCopies(t *testing.T) {
	s := NewStore(NewMemoryStorage())

	a := s.Get()
	a.Features.Modules["clients"] = false
	a.Integrations["smtp"] = "mutated"

	b := s.Get()
	assert.True(t, b.Features.Modules["clients"], "caller mutations must not leak back")
	assert.NotContains(t, b.Integrations, "smtp")
}

func TestStoreSectionUpdates(t *testing.T) {
	s := NewStore(NewMemoryStorage())

	t.Run("general patch leaves nil fields untouched", func(t *testing.T) {
		got := s.UpdateGeneral(GeneralPatch{
			CompanyName: strp("Acme Filings"),
			GST:         strp("27ABCDE1234F1Z5"),
		})
		assert.Equal(t, "Acme Filings", got.General.CompanyName)
		assert.Equal(t, "27ABCDE1234F1Z5", got.General.GST)
		assert.Equal(t, "Asia/Kolkata", got.General.Timezone, "untouched field keeps its value")
	})

	t.Run("branding patch", func(t *testing.T) {
		got := s.UpdateBranding(BrandingPatch{PrimaryColor: strp("#ff0000")})
		assert.Equal(t, "#ff0000", got.Branding.PrimaryColor)
		assert.Equal(t, "#9333ea", got.Branding.SecondaryColor)
	})

	t.Run("notifications patch can disable a channel", func(t *testing.T) {
		got := s.UpdateNotifications(NotificationsPatch{EmailEnabled: boolp(false)})
		assert.False(t, got.Notifications.EmailEnabled)
		assert.True(t, got.Notifications.PushEnabled)
	})

	t.Run("security patch merges the nested password policy", func(t *testing.T) {
		got := s.UpdateSecurity(SecurityPatch{
			SessionTimeoutMinutes: intp(60),
			PasswordPolicy: &PasswordPolicyPatch{
				MinLength: intp(12),
			},
		})
		assert.Equal(t, 60, got.Security.SessionTimeoutMinutes)
		assert.Equal(t, 12, got.Security.PasswordPolicy.MinLength)
		assert.True(t, got.Security.PasswordPolicy.RequireNumber,
			"policy fields outside the patch survive")
	})
}

func TestStoreIntegrations(t *testing.T) {
	s := NewStore(NewMemoryStorage())

	got := s.UpdateIntegrations(map[string]string{"smtp": "smtp.example:587", "sms": "gw.example"})
	assert.Equal(t, "smtp.example:587", got.Integrations["smtp"])

	t.Run("empty value removes the key", func(t *testing.T) {
		got := s.UpdateIntegrations(map[string]string{"sms": ""})
		assert.NotContains(t, got.Integrations, "sms")
		assert.Contains(t, got.Integrations, "smtp")
	})
}

func TestStoreFeatures(t *testing.T) {
	s := NewStore(NewMemoryStorage())

	assert.False(t, s.IsFeatureEnabled("security"))
	s.EnableFeature("security")
	assert.True(t, s.IsFeatureEnabled("security"))
	s.DisableFeature("security")
	assert.False(t, s.IsFeatureEnabled("security"))

	assert.False(t, s.IsFeatureEnabled("unknown-module"), "unknown modules read as off")
}

func TestStorePersistence(t *testing.T) {
	storage := NewMemoryStorage()

	s := NewStore(storage)
	s.UpdateGeneral(GeneralPatch{CompanyName: strp("Persisted Co")})
	s.EnableFeature("security")

	t.Run("a fresh store sees the saved document", func(t *testing.T) {
		reloaded := NewStore(storage)
		got := reloaded.Get()
		assert.Equal(t, "Persisted Co", got.General.CompanyName)
		assert.True(t, got.Features.Modules["security"])
	})

	t.Run("unknown module keys survive the round trip", func(t *testing.T) {
		doc := s.Get()
		doc.Features.Modules["plugins"] = true
		data, err := json.Marshal(doc)
		require.NoError(t, err)
		require.NoError(t, storage.Save(data))

		reloaded := NewStore(storage)
		assert.True(t, reloaded.IsFeatureEnabled("plugins"))
		assert.True(t, reloaded.IsFeatureEnabled("clients"))
	})
}

func TestStoreCorruptDocument(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save([]byte(`{not json`)))

	s := NewStore(storage)
	assert.Equal(t, "My Business", s.Get().General.CompanyName, "corrupt document falls back to defaults")
}

func TestStoreFailedSaveKeepsMemoryState(t *testing.T) {
	storage := &failingStorage{}
	s := NewStore(storage)

	got := s.UpdateGeneral(GeneralPatch{CompanyName: strp("Unsaved Co")})
	assert.Equal(t, "Unsaved Co", got.General.CompanyName)
	assert.Equal(t, "Unsaved Co", s.Get().General.CompanyName,
		"memory keeps the update even when the save fails")
	assert.Equal(t, 1, storage.saves)
}

func TestStoreReset(t *testing.T) {
	s := NewStore(NewMemoryStorage())
	s.UpdateGeneral(GeneralPatch{CompanyName: strp("Changed")})
	s.EnableFeature("security")

	got := s.Reset()
	assert.Equal(t, "My Business", got.General.CompanyName)
	assert.False(t, got.Features.Modules["security"])
}

func TestStoreValidate(t *testing.T) {
	s := NewStore(NewMemoryStorage())

	t.Run("defaults are clean", func(t *testing.T) {
		assert.Empty(t, s.Validate())
	})

	t.Run("violations are advisory and accumulate", func(t *testing.T) {
		s.UpdateGeneral(GeneralPatch{
			CompanyName:  strp(""),
			ContactEmail: strp("not-an-email"),
			GST:          strp("bogus"),
			PAN:          strp("nope"),
		})
		s.UpdateSecurity(SecurityPatch{PasswordPolicy: &PasswordPolicyPatch{MinLength: intp(4)}})
		s.UpdateBranding(BrandingPatch{PrimaryColor: strp("blue")})

		violations := s.Validate()
		assert.Len(t, violations, 6)

		// The bad values were still applied.
		assert.Equal(t, "bogus", s.Get().General.GST)
	})
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	storage := NewFileStorage(path)

	t.Run("missing file reads as not persisted", func(t *testing.T) {
		_, err := storage.Load()
		assert.ErrorIs(t, err, ErrNotPersisted)
	})

	t.Run("save then load round trip", func(t *testing.T) {
		require.NoError(t, storage.Save([]byte(`{"general":{"companyName":"File Co"}}`)))

		data, err := storage.Load()
		require.NoError(t, err)
		assert.Contains(t, string(data), "File Co")
	})

	t.Run("store over file storage", func(t *testing.T) {
		s := NewStore(storage)
		assert.Equal(t, "File Co", s.Get().General.CompanyName)
		assert.Equal(t, "INR", s.Get().General.Currency, "missing sections merge from defaults")
	})
}
