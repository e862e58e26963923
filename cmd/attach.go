package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"merch-intake/client"
	"merch-intake/tui"
)

var attachAPIURL string

var attachCmd = &cobra.Command{
	Use:   "attach <request-id>",
	Short: "Add more files to a submitted request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, closeLog, err := loadConfig(true)
		if err != nil {
			return err
		}
		defer closeLog()

		apiURL := cfg.APIURL
		if attachAPIURL != "" {
			apiURL = attachAPIURL
		}

		model := tui.NewAttachModel(cmd.Context(), client.New(apiURL), args[0])
		_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
		return err
	},
}

func init() {
	attachCmd.Flags().StringVar(&attachAPIURL, "api", "", "API base URL (overrides API_URL)")
}
