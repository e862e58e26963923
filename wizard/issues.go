package wizard

import (
	"strings"

	"merch-intake/models"
)

// Issues lists what is missing on a step. The wizard only enforces them in
// strict mode; in the default mode front-ends show them as hints.
func (w *Wizard) Issues(step Step) []models.FieldError {
	var issues []models.FieldError
	add := func(field, msg string) {
		issues = append(issues, models.FieldError{Field: field, Message: msg})
	}

	switch step {
	case StepBasics:
		if len(w.products) == 0 {
			add("products", "select at least one product")
		}
		if w.quantity <= 0 {
			add("quantity", "must be greater than 0")
		}
		if w.dueDate == nil {
			add("deadline", "pick a due date")
		}
		zip := strings.TrimSpace(w.zipCode)
		if zip == "" {
			add("zipCode", "is required")
		} else if len(zip) > models.MaxZipCodeLength {
			add("zipCode", "is too long")
		}
		if w.budget == "" {
			add("budget", "select a budget range")
		}
	case StepCustomization:
		if len(w.printMethods) == 0 {
			add("printMethod", "select at least one print method")
		}
	case StepReview:
		if strings.TrimSpace(w.contact.Name) == "" {
			add("contactName", "is required")
		}
		if strings.TrimSpace(w.contact.Email) == "" {
			add("contactEmail", "is required")
		}
	}
	return issues
}

// Warnings are the non-blocking notices of the basics step
type Warnings struct {
	BelowMinimum bool
	RushOrder    bool
}

// Warnings returns the MOQ and rush order notices
func (w *Wizard) Warnings() Warnings {
	return Warnings{BelowMinimum: w.IsBelowMinimum(), RushOrder: w.IsRushOrder()}
}
