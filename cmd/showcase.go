package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"merch-intake/client"
	"merch-intake/tui"
)

var showcaseCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Scroll through the product lineup",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, closeLog, err := loadConfig(true)
		if err != nil {
			return err
		}
		defer closeLog()

		catalog := fetchCatalog(cmd.Context(), client.New(cfg.APIURL))
		model := tui.NewShowcaseModel(catalog)
		_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
		return err
	},
}
