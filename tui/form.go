package tui

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/dustin/go-humanize"

	"merch-intake/models"
	"merch-intake/service"
	"merch-intake/wizard"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldToggle
	fieldChoice
	fieldAction
)

type choice struct {
	ID    string
	Label string
}

// field is one focusable row of a wizard step
type field struct {
	kind    fieldKind
	section string
	label   string
	detail  string
	swatch  string

	// text
	input    textinput.Model
	value    func() string
	onChange func(string)

	// toggle and action
	checked    func() bool
	onActivate func()
	onRemove   func()

	// choice
	choices []choice
	current func() string
	choose  func(id string)
}

// formState is shared by the field closures of one model
type formState struct {
	filePath string
	notice   string
}

// maxPreviewBytes bounds images inlined as previews; the server shrinks them
const maxPreviewBytes = 5 << 20

func newTextField(section, label, placeholder string, value func() string, onChange func(string)) field {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 500
	in.SetValue(value())
	return field{kind: fieldText, section: section, label: label, input: in, value: value, onChange: onChange}
}

func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

func buildFields(w *wizard.Wizard, editor *wizard.ColorEditor, state *formState) []field {
	catalog := w.Catalog()
	var fields []field

	switch w.Step() {
	case wizard.StepBasics:
		fields = append(fields,
			newTextField("Delivery", "Zip code", "94110", w.ZipCode, w.SetZipCode),
			newTextField("", "Quantity", "50",
				func() string { return strconv.Itoa(w.Quantity()) },
				func(v string) {
					if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
						w.SetQuantity(n)
					}
				}),
			newTextField("", "Due date", "YYYY-MM-DD",
				func() string {
					if d := w.DueDate(); d != nil {
						return d.Format(wizard.DateLayout)
					}
					return ""
				},
				func(v string) {
					v = strings.TrimSpace(v)
					if v == "" {
						w.SetDueDate(nil)
						return
					}
					if d, err := time.ParseInLocation(wizard.DateLayout, v, time.Local); err == nil {
						w.SetDueDate(&d)
					}
				}),
		)

		budgets := make([]choice, 0, len(catalog.BudgetRanges))
		for _, b := range catalog.BudgetRanges {
			budgets = append(budgets, choice{ID: b.ID, Label: b.Label})
		}
		fields = append(fields, field{
			kind: fieldChoice, label: "Budget", choices: budgets,
			current: w.Budget, choose: w.SetBudget,
		})

		for i, p := range catalog.Products {
			id := p.ID
			f := field{
				kind: fieldToggle, label: p.Label, detail: p.Specs,
				checked:    func() bool { return contains(w.Products(), id) },
				onActivate: func() { w.ToggleProduct(id) },
			}
			if i == 0 {
				f.section = "Products"
			}
			fields = append(fields, f)
		}

	case wizard.StepCustomization:
		for i, pm := range catalog.PrintMethods {
			id := pm.ID
			f := field{
				kind: fieldToggle, label: pm.Label, detail: pm.Description,
				checked:    func() bool { return contains(w.PrintMethods(), id) },
				onActivate: func() { w.TogglePrintMethod(id) },
			}
			if i == 0 {
				f.section = "Print method"
			}
			fields = append(fields, f)
		}

		for i, cw := range catalog.Colorways {
			id := cw.ID
			f := field{
				kind: fieldToggle, label: cw.Label, swatch: cw.Hex,
				checked:    func() bool { return contains(w.Colors(), id) },
				onActivate: func() { w.ToggleColor(id) },
			}
			if i == 0 {
				f.section = "Colors"
			}
			fields = append(fields, f)
		}
		for _, c := range w.CustomColors() {
			id := c.ID
			fields = append(fields, field{
				kind: fieldToggle, label: c.Label, detail: c.Hex + "  (x removes)", swatch: c.Hex,
				checked:    func() bool { return contains(w.Colors(), id) },
				onActivate: func() { w.ToggleColor(id) },
				onRemove:   func() { w.RemoveCustomColor(id) },
			})
		}

		fields = append(fields,
			newTextField("Custom color", "Name", "Burgundy",
				func() string { return editor.Label },
				func(v string) { editor.Label = v }),
			newTextField("", "Hex", "#800020", editor.Hex, editor.SetHex),
		)
		for i, name := range []string{"R", "G", "B"} {
			channel := i
			fields = append(fields, newTextField("", name, "0-255",
				func() string { return editor.Channels()[channel] },
				func(v string) { editor.SetChannel(channel, v) }))
		}
		fields = append(fields, field{
			kind: fieldAction, label: "Add custom color",
			onActivate: func() {
				if _, ok := w.AddCustomColorFrom(editor); !ok {
					state.notice = "Enter a name for the custom color"
				}
			},
		})

		for i, loc := range catalog.PrintLocations {
			location := loc
			f := field{
				kind: fieldToggle, label: location,
				checked:    func() bool { return contains(w.PrintLocations(), location) },
				onActivate: func() { w.TogglePrintLocation(location) },
			}
			if i == 0 {
				f.section = "Print locations"
			}
			fields = append(fields, f)
		}

	case wizard.StepUploads:
		fields = append(fields,
			newTextField("Artwork", "File path", "./logo.png",
				func() string { return state.filePath },
				func(v string) { state.filePath = v }),
			field{
				kind: fieldAction, label: "Attach file",
				onActivate: func() {
					f, err := fileFromPath(state.filePath)
					if err != nil {
						state.notice = err.Error()
						return
					}
					w.AddFile(f)
					state.filePath = ""
				},
			},
		)
		for _, f := range w.Files() {
			id := f.ID
			fields = append(fields, field{
				kind: fieldToggle, label: f.Name,
				detail:     fmt.Sprintf("%s, %s  (x removes)", f.Type, humanize.Bytes(uint64(f.Size))),
				checked:    func() bool { return true },
				onActivate: func() {},
				onRemove:   func() { w.RemoveFile(id) },
			})
		}
		fields = append(fields,
			newTextField("Notes", "Notes", "Anything we should know", w.Notes, w.SetNotes),
			newTextField("", "Inspiration links", "https://...", w.Links, w.SetLinks),
		)

	case wizard.StepReview:
		setContact := func(apply func(c *wizard.Contact, v string)) func(string) {
			return func(v string) {
				c := w.Contact()
				apply(&c, v)
				w.SetContact(c)
			}
		}
		fields = append(fields,
			newTextField("Contact", "Name", "Sam Rivera",
				func() string { return w.Contact().Name },
				setContact(func(c *wizard.Contact, v string) { c.Name = v })),
			newTextField("", "Company", "optional",
				func() string { return w.Contact().Company },
				setContact(func(c *wizard.Contact, v string) { c.Company = v })),
			newTextField("", "Email", "sam@example.com",
				func() string { return w.Contact().Email },
				setContact(func(c *wizard.Contact, v string) { c.Email = v })),
			newTextField("", "Phone", "optional",
				func() string { return w.Contact().Phone },
				setContact(func(c *wizard.Contact, v string) { c.Phone = v })),
		)
	}
	return fields
}

// fileFromPath reads the metadata of a local file. Images small enough are
// inlined as a data URI preview.
func fileFromPath(path string) (models.UploadedFile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return models.UploadedFile{}, fmt.Errorf("enter a file path")
	}
	info, err := os.Stat(path)
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("cannot attach %s: %w", path, err)
	}
	if info.IsDir() {
		return models.UploadedFile{}, fmt.Errorf("%s is a directory", path)
	}

	f := models.UploadedFile{
		Name: filepath.Base(path),
		Type: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
		Size: info.Size(),
	}
	if i := strings.Index(f.Type, ";"); i >= 0 {
		f.Type = f.Type[:i]
	}

	var data []byte
	if info.Size() <= maxPreviewBytes {
		if data, err = os.ReadFile(path); err != nil {
			return models.UploadedFile{}, fmt.Errorf("cannot read %s: %w", path, err)
		}
	}
	if f.Type == "" {
		f.Type = "application/octet-stream"
		if len(data) > 0 {
			f.Type = strings.SplitN(http.DetectContentType(data), ";", 2)[0]
		}
	}
	if strings.HasPrefix(f.Type, "image/") && len(data) > 0 {
		f.Preview = service.EncodeDataURI(f.Type, data)
	}
	return f, nil
}
