package wizard

import (
	"time"

	"merch-intake/models"
)

// Snapshot is the persistable part of a wizard: everything the customer
// entered, without submission status.
type Snapshot struct {
	Step           Step                  `json:"step"`
	Products       []string              `json:"products"`
	PrintMethods   []string              `json:"printMethods"`
	Colors         []string              `json:"colors"`
	PrintLocations []string              `json:"printLocations"`
	CustomColors   []CustomColor         `json:"customColors"`
	Quantity       int                   `json:"quantity"`
	DueDate        *time.Time            `json:"dueDate,omitempty"`
	ZipCode        string                `json:"zipCode"`
	Budget         string                `json:"budget"`
	Notes          string                `json:"notes"`
	Links          string                `json:"links"`
	Files          []models.UploadedFile `json:"files"`
	Contact        Contact               `json:"contact"`
}

// Snapshot captures the draft
func (w *Wizard) Snapshot() Snapshot {
	return Snapshot{
		Step:           w.step,
		Products:       w.Products(),
		PrintMethods:   w.PrintMethods(),
		Colors:         w.Colors(),
		PrintLocations: w.PrintLocations(),
		CustomColors:   w.CustomColors(),
		Quantity:       w.quantity,
		DueDate:        w.dueDate,
		ZipCode:        w.zipCode,
		Budget:         w.budget,
		Notes:          w.notes,
		Links:          w.links,
		Files:          w.Files(),
		Contact:        w.contact,
	}
}

// Restore creates a wizard from a draft. A submitted or out-of-range step
// restarts at the review step or the basics step respectively.
func Restore(s Snapshot, opts Options) *Wizard {
	w := New(opts)
	switch {
	case s.Step == StepSubmitted:
		w.step = StepReview
	case s.Step >= StepBasics && s.Step <= StepReview:
		w.step = s.Step
	}
	w.products = append([]string(nil), s.Products...)
	w.printMethods = append([]string(nil), s.PrintMethods...)
	w.colors = append([]string(nil), s.Colors...)
	w.printLocations = append([]string(nil), s.PrintLocations...)
	w.customColors = append([]CustomColor(nil), s.CustomColors...)
	w.quantity = s.Quantity
	w.SetDueDate(s.DueDate)
	w.zipCode = s.ZipCode
	w.budget = s.Budget
	w.notes = s.Notes
	w.links = s.Links
	w.files = append([]models.UploadedFile(nil), s.Files...)
	w.contact = s.Contact
	return w
}
