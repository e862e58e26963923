package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"merch-intake/models"
	"merch-intake/wizard"
)

//go:embed assets/summary.html
var summaryFS embed.FS

// SummaryServiceInterface defines the contract for summary sheet rendering
type SummaryServiceInterface interface {
	RenderHTML(ctx context.Context, id string) ([]byte, error)
	RenderPDF(ctx context.Context, id string) ([]byte, error)
}

// SummaryService renders a printable quote-request sheet for one merch request
type SummaryService struct {
	requests   RequestServiceInterface
	catalog    CatalogProvider
	baseURL    string // where the server can reach itself, e.g. http://localhost:8080
	chromePath string
	tmpl       *template.Template
}

var _ SummaryServiceInterface = (*SummaryService)(nil)

// NewSummaryService creates a new SummaryService
func NewSummaryService(requests RequestServiceInterface, catalog CatalogProvider, baseURL, chromePath string) (*SummaryService, error) {
	tmpl, err := template.New("summary.html").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(summaryFS, "assets/summary.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &SummaryService{
		requests:   requests,
		catalog:    catalog,
		baseURL:    strings.TrimRight(baseURL, "/"),
		chromePath: chromePath,
		tmpl:       tmpl,
	}, nil
}

type summaryProduct struct {
	Name         string
	Quantity     int
	Specs        string
	BelowMinimum bool
}

type summaryColor struct {
	Label  string
	Hex    string
	Custom bool
}

type summaryFile struct {
	Name    string
	Type    string
	Size    string
	Preview template.URL
}

type summaryView struct {
	ID                   string
	CreatedAt            string
	ContactName          string
	ContactEmail         string
	ContactPhone         string
	Company              string
	ZipCode              string
	Products             []summaryProduct
	TotalQuantity        int
	MinimumOrderQuantity int
	BelowMinimum         bool
	Deadline             string
	Rush                 bool
	Budget               string
	PrintMethod          string
	PrintLocations       []string
	Colors               []summaryColor
	Files                []summaryFile
	Message              string
}

func (s *SummaryService) buildView(req *models.MerchRequest) summaryView {
	catalog := s.catalog.Catalog()

	v := summaryView{
		ID:                   req.ID,
		CreatedAt:            req.CreatedAt.Format("Jan 2, 2006 15:04 MST"),
		ContactName:          req.ContactName,
		ContactEmail:         req.ContactEmail,
		ContactPhone:         models.StringValue(req.ContactPhone),
		Company:              models.StringValue(req.Company),
		ZipCode:              req.ZipCode,
		MinimumOrderQuantity: catalog.MOQ(),
		Deadline:             models.StringValue(req.Deadline),
		PrintMethod:          models.StringValue(req.PrintMethod),
		PrintLocations:       req.PrintLocations,
		Message:              models.StringValue(req.Message),
	}

	// The MOQ applies to each product line, not to the total
	for _, p := range req.Products {
		line := summaryProduct{
			Name:         p.Name,
			Quantity:     p.Quantity,
			BelowMinimum: p.Quantity < v.MinimumOrderQuantity,
		}
		if product, ok := catalog.ProductByID(p.ID); ok {
			line.Specs = product.Specs
		}
		v.Products = append(v.Products, line)
		v.TotalQuantity += p.Quantity
		v.BelowMinimum = v.BelowMinimum || line.BelowMinimum
	}

	if deadline, err := time.Parse(wizard.DateLayout, v.Deadline); err == nil {
		v.Rush = wizard.DaysBetween(req.CreatedAt, deadline) < catalog.RushDays()
	}

	if budget := models.StringValue(req.Budget); budget != "" {
		v.Budget = budget
		if r, ok := catalog.BudgetRangeByID(budget); ok {
			v.Budget = r.Label
		}
	}

	// Colorways are stored by label; one that left the catalog gets no swatch
	for _, label := range req.Colorways {
		color := summaryColor{Label: label}
		for _, cw := range catalog.Colorways {
			if strings.EqualFold(cw.Label, label) || cw.ID == label {
				color.Hex = cw.Hex
				break
			}
		}
		v.Colors = append(v.Colors, color)
	}
	for _, c := range req.CustomColors {
		v.Colors = append(v.Colors, summaryColor{Label: c.Name, Hex: c.Hex, Custom: true})
	}

	for _, f := range req.Files {
		file := summaryFile{Name: f.Name, Type: f.Type, Size: humanize.Bytes(uint64(f.Size))}
		if uri, ok := ParseDataURI(f.Preview); ok && strings.HasPrefix(uri.MimeType, "image/") {
			file.Preview = template.URL(f.Preview)
		}
		v.Files = append(v.Files, file)
	}
	return v
}

// RenderHTML renders the summary sheet of request id
func (s *SummaryService) RenderHTML(ctx context.Context, id string) ([]byte, error) {
	req, err := s.requests.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, s.buildView(req)); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// detectChromePath returns the configured Chrome path when it exists,
// otherwise the first common Chrome/Chromium installation found
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// RenderPDF prints the HTML summary sheet of request id to an A4 PDF with headless Chrome
func (s *SummaryService) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	// fail fast with ErrNotFound before starting a browser
	if _, err := s.requests.GetRequest(ctx, id); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/api/requests/%s/summary?format=html", s.baseURL, id)
	log.Info().Str("url", renderURL).Msg("🖨️  RenderPDF: printing summary")

	var pdfBuf []byte
	var fontsReady bool
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &fontsReady, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Info().Str("id", id).Int("bytes", len(pdfBuf)).Msg("✓ RenderPDF: summary printed")
	return pdfBuf, nil
}
