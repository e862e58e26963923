package cmd

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"merch-intake/client"
	"merch-intake/models"
	"merch-intake/service"
	"merch-intake/telemetry"
	"merch-intake/tui"
	"merch-intake/wizard"
)

var (
	wizardStrict bool
	wizardDraft  string
	wizardAPIURL string
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Fill in a merch request in the terminal",
	Long: `Walk through the four request steps and submit to the API.

Ctrl+C saves a draft that the next run picks up. With --strict a step
can only be left once it is complete.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, closeLog, err := loadConfig(true)
		if err != nil {
			return err
		}
		defer closeLog()

		apiURL := cfg.APIURL
		if wizardAPIURL != "" {
			apiURL = wizardAPIURL
		}
		api := client.New(apiURL)
		catalog := fetchCatalog(cmd.Context(), api)

		opts := wizard.Options{
			Strict:  wizardStrict,
			Catalog: catalog,
			Sink:    telemetry.NewZerologSink(log.Logger, zerolog.DebugLevel),
		}

		w := wizard.New(opts)
		if wizardDraft != "" {
			snap, err := tui.LoadDraft(wizardDraft)
			if err != nil {
				log.Warn().Err(err).Msg("⚠️  Ignoring unreadable draft")
			} else if snap != nil {
				w = wizard.Restore(*snap, opts)
				log.Info().Str("path", wizardDraft).Msg("Restored draft")
			}
		}

		model := tui.NewWizardModel(cmd.Context(), w, api, wizardDraft)
		_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return err
	},
}

func init() {
	wizardCmd.Flags().BoolVar(&wizardStrict, "strict", false, "require every step to be complete before moving on")
	wizardCmd.Flags().StringVar(&wizardDraft, "draft", ".merch-draft.json", "draft file; empty disables drafts")
	wizardCmd.Flags().StringVar(&wizardAPIURL, "api", "", "API base URL (overrides API_URL)")
}

// fetchCatalog asks the API for its catalog and falls back to the built-in one
func fetchCatalog(ctx context.Context, api *client.Client) *models.Catalog {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	catalog, err := api.Catalog(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️  Catalog unavailable, using the built-in catalog")
		return service.DefaultCatalog()
	}
	return catalog
}
