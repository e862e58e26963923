package models

import (
	"fmt"
	"net/mail"
	"strings"
)

// MaxZipCodeLength mirrors the zip_code varchar(10) column
const MaxZipCodeLength = 10

// FieldError describes one invalid field of a request body
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every invalid field of a request body
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationErrors) add(field, format string, args ...interface{}) {
	*v = append(*v, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the required fields of a create request.
// It returns nil or a ValidationErrors value.
func (r *CreateMerchRequestRequest) Validate() error {
	var errs ValidationErrors

	zip := strings.TrimSpace(r.ZipCode)
	if zip == "" {
		errs.add("zipCode", "is required")
	} else if len(zip) > MaxZipCodeLength {
		errs.add("zipCode", "must be at most %d characters", MaxZipCodeLength)
	}

	if len(r.Products) == 0 {
		errs.add("products", "at least one product is required")
	}
	for i, p := range r.Products {
		if strings.TrimSpace(p.ID) == "" {
			errs.add(fmt.Sprintf("products[%d].id", i), "is required")
		}
		if strings.TrimSpace(p.Name) == "" {
			errs.add(fmt.Sprintf("products[%d].name", i), "is required")
		}
		if p.Quantity <= 0 {
			errs.add(fmt.Sprintf("products[%d].quantity", i), "must be greater than 0")
		}
	}

	for i, c := range r.CustomColors {
		if strings.TrimSpace(c.Name) == "" {
			errs.add(fmt.Sprintf("customColors[%d].name", i), "is required")
		}
		if !IsHexColor(c.Hex) {
			errs.add(fmt.Sprintf("customColors[%d].hex", i), "must be a #RRGGBB color")
		}
	}

	errs = append(errs, validateFiles("files", r.Files)...)

	if strings.TrimSpace(r.ContactName) == "" {
		errs.add("contactName", "is required")
	}
	if strings.TrimSpace(r.ContactEmail) == "" {
		errs.add("contactEmail", "is required")
	} else if _, err := mail.ParseAddress(r.ContactEmail); err != nil {
		errs.add("contactEmail", "must be a valid email address")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateFiles checks a list of files sent to POST /api/requests/:id/files
func ValidateFiles(files []UploadedFile) error {
	errs := validateFiles("", files)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateFiles(prefix string, files []UploadedFile) ValidationErrors {
	var errs ValidationErrors
	for i, f := range files {
		field := fmt.Sprintf("%s[%d]", prefix, i)
		if strings.TrimSpace(f.ID) == "" {
			errs.add(field+".id", "is required")
		}
		if strings.TrimSpace(f.Name) == "" {
			errs.add(field+".name", "is required")
		}
		if strings.TrimSpace(f.Type) == "" {
			errs.add(field+".type", "is required")
		}
		if f.Size < 0 {
			errs.add(field+".size", "must not be negative")
		}
	}
	return errs
}

// IsHexColor reports whether s is a #RRGGBB color (leading # optional)
func IsHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return false
	}
	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'f', ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}
