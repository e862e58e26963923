// Package wizard implements the four-step merch request flow:
// Basics, Customization, Uploads, Review, then Submitted.
//
// A Wizard is not safe for concurrent use; front-ends drive it from a single
// event loop and run the submission call asynchronously through
// BeginSubmit/CompleteSubmit.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"merch-intake/models"
	"merch-intake/telemetry"
)

// Step is a state of the wizard
type Step int

const (
	StepBasics Step = iota + 1
	StepCustomization
	StepUploads
	StepReview
	StepSubmitted
)

// StepCount is the number of input steps before submission
const StepCount = 4

var stepTitles = map[Step]string{
	StepBasics:        "Basics",
	StepCustomization: "Customization",
	StepUploads:       "Uploads",
	StepReview:        "Review",
	StepSubmitted:     "Submitted",
}

func (s Step) String() string {
	if title, ok := stepTitles[s]; ok {
		return title
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// CustomColorPrefix marks ids of user-defined colors
const CustomColorPrefix = "custom-"

var (
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrAlreadySubmitted   = errors.New("request already submitted")
	ErrNotAtReview        = errors.New("submission is only possible from the review step")
	ErrNoSubmitter        = errors.New("no submitter configured")
)

// StepIncompleteError is returned by Next in strict mode when the current
// step still has issues.
type StepIncompleteError struct {
	Step   Step
	Issues []models.FieldError
}

func (e *StepIncompleteError) Error() string {
	return fmt.Sprintf("step %s is incomplete: %d issue(s)", e.Step, len(e.Issues))
}

// Submitter persists an assembled request
type Submitter interface {
	CreateRequest(ctx context.Context, req *models.CreateMerchRequestRequest) (*models.MerchRequest, error)
}

// CustomColor is a palette entry defined by the customer
type CustomColor struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Hex   string `json:"hex"`
}

// Contact is collected on the review step
type Contact struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// Options configure a Wizard. Zero values are usable.
type Options struct {
	// Strict refuses Next while the current step has issues.
	Strict  bool
	Catalog *models.Catalog
	Sink    telemetry.Sink
	Now     func() time.Time
}

// Wizard is the request wizard state machine
type Wizard struct {
	step Step

	products       []string
	printMethods   []string
	colors         []string
	printLocations []string
	customColors   []CustomColor

	quantity int
	dueDate  *time.Time
	zipCode  string
	budget   string
	notes    string
	links    string
	files    []models.UploadedFile
	contact  Contact

	inFlight bool
	lastErr  error
	record   *models.MerchRequest

	strict  bool
	catalog *models.Catalog
	sink    telemetry.Sink
	now     func() time.Time
}

// New creates a wizard at StepBasics with a quantity of 50
func New(opts Options) *Wizard {
	w := &Wizard{
		step:     StepBasics,
		quantity: MinimumOrderQuantity,
		strict:   opts.Strict,
		catalog:  opts.Catalog,
		sink:     telemetry.OrNop(opts.Sink),
		now:      opts.Now,
	}
	if w.now == nil {
		w.now = time.Now
	}
	if w.catalog == nil {
		w.catalog = &models.Catalog{}
	}
	return w
}

// Step returns the current state
func (w *Wizard) Step() Step { return w.step }

// InFlight reports whether a submission is awaiting its result
func (w *Wizard) InFlight() bool { return w.inFlight }

// LastError is the error of the last failed submission or strict transition
func (w *Wizard) LastError() error { return w.lastErr }

// DismissError clears LastError
func (w *Wizard) DismissError() { w.lastErr = nil }

// Record is the persisted request once Submitted
func (w *Wizard) Record() *models.MerchRequest { return w.record }

// Catalog returns the catalog used for labels
func (w *Wizard) Catalog() *models.Catalog { return w.catalog }

// Next advances one step. From StepReview it submits through s and moves to
// StepSubmitted on success; on failure it stays at StepReview and returns the
// error, which is also kept in LastError.
func (w *Wizard) Next(ctx context.Context, s Submitter) error {
	switch {
	case w.step == StepSubmitted:
		return ErrAlreadySubmitted
	case w.inFlight:
		return ErrSubmissionInFlight
	}

	if w.step < StepReview {
		if err := w.checkStep(); err != nil {
			return err
		}
		w.step++
		w.sink.Emit("wizard.next", telemetry.Fields{"step": int(w.step)})
		return nil
	}

	if s == nil {
		return ErrNoSubmitter
	}
	payload, err := w.BeginSubmit()
	if err != nil {
		return err
	}
	record, err := s.CreateRequest(ctx, payload)
	w.CompleteSubmit(record, err)
	return err
}

// Previous goes back one step. It is a no-op at StepBasics, at StepSubmitted
// and while a submission is in flight.
func (w *Wizard) Previous() {
	if w.inFlight || w.step <= StepBasics || w.step == StepSubmitted {
		return
	}
	w.step--
	w.sink.Emit("wizard.previous", telemetry.Fields{"step": int(w.step)})
}

// BeginSubmit marks a submission in flight and returns the payload to send.
func (w *Wizard) BeginSubmit() (*models.CreateMerchRequestRequest, error) {
	switch {
	case w.step == StepSubmitted:
		return nil, ErrAlreadySubmitted
	case w.step != StepReview:
		return nil, ErrNotAtReview
	case w.inFlight:
		return nil, ErrSubmissionInFlight
	}
	if err := w.checkStep(); err != nil {
		return nil, err
	}
	w.inFlight = true
	w.lastErr = nil
	payload := w.Payload()
	w.sink.Emit("wizard.submit", telemetry.Fields{"products": len(payload.Products), "quantity": w.quantity})
	return payload, nil
}

// CompleteSubmit settles the in-flight submission
func (w *Wizard) CompleteSubmit(record *models.MerchRequest, err error) {
	if !w.inFlight {
		return
	}
	w.inFlight = false
	if err == nil && record == nil {
		err = errors.New("empty response from persistence")
	}
	if err != nil {
		w.lastErr = err
		w.sink.Emit("wizard.submit_failed", telemetry.Fields{"error": err.Error()})
		return
	}
	w.record = record
	w.step = StepSubmitted
	w.sink.Emit("wizard.submitted", telemetry.Fields{"id": record.ID})
}

func (w *Wizard) checkStep() error {
	if !w.strict {
		return nil
	}
	if issues := w.Issues(w.step); len(issues) > 0 {
		err := &StepIncompleteError{Step: w.step, Issues: issues}
		w.lastErr = err
		return err
	}
	return nil
}

// Quantity returns the requested quantity
func (w *Wizard) Quantity() int { return w.quantity }

// SetQuantity sets the quantity per product
func (w *Wizard) SetQuantity(q int) {
	w.quantity = q
	w.sink.Emit("wizard.quantity", telemetry.Fields{"quantity": q, "belowMinimum": w.IsBelowMinimum()})
}

// DueDate returns the due date, nil when unset
func (w *Wizard) DueDate() *time.Time { return w.dueDate }

// SetDueDate sets or clears (nil) the due date
func (w *Wizard) SetDueDate(d *time.Time) {
	if d == nil {
		w.dueDate = nil
		return
	}
	v := *d
	w.dueDate = &v
}

// MinimumOrderQuantity is the MOQ of the wizard's catalog
func (w *Wizard) MinimumOrderQuantity() int { return w.catalog.MOQ() }

// RushThresholdDays is the rush lead time of the wizard's catalog
func (w *Wizard) RushThresholdDays() int { return w.catalog.RushDays() }

// IsBelowMinimum reports the MOQ warning. The quantity applies to every
// selected product, so it is compared per product line.
func (w *Wizard) IsBelowMinimum() bool { return w.quantity < w.MinimumOrderQuantity() }

// IsRushOrder reports the rush order warning relative to today
func (w *Wizard) IsRushOrder() bool {
	return isRushWithin(w.dueDate, w.now(), w.RushThresholdDays())
}

func (w *Wizard) ZipCode() string { return w.zipCode }
func (w *Wizard) SetZipCode(zip string) { w.zipCode = zip }
func (w *Wizard) Budget() string { return w.budget }
func (w *Wizard) SetBudget(id string) { w.budget = id }
func (w *Wizard) Notes() string { return w.notes }
func (w *Wizard) SetNotes(notes string) { w.notes = notes }
func (w *Wizard) Links() string { return w.links }
func (w *Wizard) SetLinks(links string) { w.links = links }
func (w *Wizard) Contact() Contact { return w.contact }
func (w *Wizard) SetContact(c Contact) { w.contact = c }

// Products returns the selected product ids in selection order
func (w *Wizard) Products() []string { return append([]string(nil), w.products...) }

// PrintMethods returns the selected print method ids
func (w *Wizard) PrintMethods() []string { return append([]string(nil), w.printMethods...) }

// Colors returns the selected color ids, predefined and custom
func (w *Wizard) Colors() []string { return append([]string(nil), w.colors...) }

// PrintLocations returns the selected print locations
func (w *Wizard) PrintLocations() []string { return append([]string(nil), w.printLocations...) }

// CustomColors returns the custom palette
func (w *Wizard) CustomColors() []CustomColor { return append([]CustomColor(nil), w.customColors...) }

// ToggleProduct selects or deselects a product
func (w *Wizard) ToggleProduct(id string) {
	w.products = toggle(w.products, id)
	w.sink.Emit("wizard.product", telemetry.Fields{"id": id})
}

// TogglePrintMethod selects or deselects a print method
func (w *Wizard) TogglePrintMethod(id string) {
	w.printMethods = toggle(w.printMethods, id)
	w.sink.Emit("wizard.print_method", telemetry.Fields{"id": id})
}

// ToggleColor selects or deselects a predefined or custom color
func (w *Wizard) ToggleColor(id string) {
	w.colors = toggle(w.colors, id)
	w.sink.Emit("wizard.color", telemetry.Fields{"id": id})
}

// TogglePrintLocation selects or deselects a print location
func (w *Wizard) TogglePrintLocation(location string) {
	w.printLocations = toggle(w.printLocations, location)
	w.sink.Emit("wizard.print_location", telemetry.Fields{"location": location})
}

// IsSelected reports whether id is selected in any category
func (w *Wizard) IsSelected(id string) bool {
	return contains(w.products, id) || contains(w.printMethods, id) ||
		contains(w.colors, id) || contains(w.printLocations, id)
}

// AddCustomColor appends a color to the palette and selects it. It returns
// false and changes nothing when the trimmed label is empty. A hex that is not
// a complete color is rejected as well, since the API refuses such a custom
// color on submit; AddCustomColorFrom never hits this because the editor
// always holds a complete color in its channels.
func (w *Wizard) AddCustomColor(label, hex string) (CustomColor, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return CustomColor{}, false
	}
	rgb, ok := HexToRGB(hex)
	if !ok {
		return CustomColor{}, false
	}
	c := CustomColor{
		ID:    CustomColorPrefix + uuid.NewString(),
		Label: label,
		Hex:   rgb.Hex(),
	}
	w.customColors = append(w.customColors, c)
	w.colors = append(w.colors, c.ID)
	w.sink.Emit("wizard.custom_color_added", telemetry.Fields{"id": c.ID, "hex": c.Hex})
	return c, true
}

// AddCustomColorFrom adds the editor's color and resets the editor on success.
// A partial hex falls back to the last complete color shown in the channels.
func (w *Wizard) AddCustomColorFrom(e *ColorEditor) (CustomColor, bool) {
	c, ok := w.AddCustomColor(e.Label, e.Resolved())
	if ok {
		e.Reset()
	}
	return c, ok
}

// RemoveCustomColor removes a custom color from the palette and the selection
func (w *Wizard) RemoveCustomColor(id string) {
	kept := w.customColors[:0]
	for _, c := range w.customColors {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	w.customColors = kept
	w.colors = remove(w.colors, id)
	w.sink.Emit("wizard.custom_color_removed", telemetry.Fields{"id": id})
}

// Files returns the locally collected file metadata
func (w *Wizard) Files() []models.UploadedFile {
	return append([]models.UploadedFile(nil), w.files...)
}

// AddFile records a local file; it is only sent with the submission
func (w *Wizard) AddFile(f models.UploadedFile) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	w.files = append(w.files, f)
	w.sink.Emit("wizard.file_added", telemetry.Fields{"name": f.Name, "size": f.Size})
}

// RemoveFile drops a local file by id
func (w *Wizard) RemoveFile(id string) {
	kept := w.files[:0]
	for _, f := range w.files {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	w.files = kept
	w.sink.Emit("wizard.file_removed", telemetry.Fields{"id": id})
}

// StepIndicator is one entry of the progress bar
type StepIndicator struct {
	Number    int
	Title     string
	Completed bool
	Current   bool
}

// Progress returns the progress bar entries. The review step is never shown as completed.
func (w *Wizard) Progress() []StepIndicator {
	out := make([]StepIndicator, 0, StepCount)
	for s := StepBasics; s <= StepReview; s++ {
		out = append(out, StepIndicator{
			Number:    int(s),
			Title:     s.String(),
			Completed: s < StepReview && w.step > s,
			Current:   w.step == s,
		})
	}
	return out
}

func toggle(set []string, id string) []string {
	if contains(set, id) {
		return remove(set, id)
	}
	return append(set, id)
}

func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

func remove(set []string, id string) []string {
	out := set[:0]
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
