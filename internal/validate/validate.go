// Package validate holds the Indian tax-id and formatting validators the
// dashboard applies to client records and settings, exposed both as plain
// functions and as validator.v10 tags for request binding.
package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	gstPattern      = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)
	panPattern      = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	phonePattern    = regexp.MustCompile(`^[0-9]{10}$`)
	hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// GST reports whether s is a well-formed 15-character GSTIN. The embedded
// PAN, entity digit and the fixed 'Z' at position 14 are checked; the
// checksum character is accepted as any alphanumeric.
func GST(s string) bool {
	return gstPattern.MatchString(s)
}

// PAN reports whether s is a well-formed 10-character PAN
func PAN(s string) bool {
	return panPattern.MatchString(s)
}

// Phone reports whether s is a bare 10-digit phone number
func Phone(s string) bool {
	return phonePattern.MatchString(s)
}

// HexColor reports whether s is a #rrggbb color
func HexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// Register installs the custom tags (gstin, pan, inphone, hexrgb) on a
// validator instance. Empty values pass; combine with required when the
// field is mandatory.
func Register(v *validator.Validate) error {
	checks := map[string]func(string) bool{
		"gstin":   GST,
		"pan":     PAN,
		"inphone": Phone,
		"hexrgb":  HexColor,
	}
	for tag, check := range checks {
		check := check
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if value == "" {
				return true
			}
			return check(value)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
