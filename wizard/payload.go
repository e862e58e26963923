package wizard

import (
	"strings"

	"merch-intake/models"
)

// DateLayout is the wire format of the deadline field
const DateLayout = "2006-01-02"

// Payload assembles the create request from the accumulated state.
// Each selected product is requested in the wizard's quantity. Selected
// print methods are sent as one comma-separated string.
func (w *Wizard) Payload() *models.CreateMerchRequestRequest {
	req := &models.CreateMerchRequestRequest{
		ZipCode:      strings.TrimSpace(w.zipCode),
		Budget:       models.StringPtr(w.budget),
		ContactName:  strings.TrimSpace(w.contact.Name),
		ContactEmail: strings.TrimSpace(w.contact.Email),
		ContactPhone: models.StringPtr(strings.TrimSpace(w.contact.Phone)),
		Company:      models.StringPtr(strings.TrimSpace(w.contact.Company)),
		Message:      models.StringPtr(w.message()),
	}

	if w.dueDate != nil {
		req.Deadline = models.StringPtr(w.dueDate.Format(DateLayout))
	}

	for _, id := range w.products {
		name := id
		if p, ok := w.catalog.ProductByID(id); ok {
			name = p.Label
		}
		req.Products = append(req.Products, models.ProductLine{ID: id, Name: name, Quantity: w.quantity})
	}

	var methods []string
	for _, id := range w.printMethods {
		label := id
		if m, ok := w.catalog.PrintMethodByID(id); ok {
			label = m.Label
		}
		methods = append(methods, label)
	}
	req.PrintMethod = models.StringPtr(strings.Join(methods, ", "))

	for _, id := range w.colors {
		if strings.HasPrefix(id, CustomColorPrefix) {
			if c, ok := w.customColor(id); ok {
				req.CustomColors = append(req.CustomColors, models.CustomColor{Name: c.Label, Hex: c.Hex})
			}
			continue
		}
		label := id
		if cw, ok := w.catalog.ColorwayByID(id); ok {
			label = cw.Label
		}
		req.Colorways = append(req.Colorways, label)
	}

	if len(w.printLocations) > 0 {
		req.PrintLocations = append([]string(nil), w.printLocations...)
	}
	if len(w.files) > 0 {
		req.Files = append([]models.UploadedFile(nil), w.files...)
	}
	return req
}

func (w *Wizard) message() string {
	notes := strings.TrimSpace(w.notes)
	links := strings.TrimSpace(w.links)
	switch {
	case links == "":
		return notes
	case notes == "":
		return "Links: " + links
	default:
		return notes + "\n\nLinks: " + links
	}
}

func (w *Wizard) customColor(id string) (CustomColor, bool) {
	for _, c := range w.customColors {
		if c.ID == id {
			return c, true
		}
	}
	return CustomColor{}, false
}
