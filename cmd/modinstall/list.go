package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/modinstall/pkg/config"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			pterm.Println("Available Modules:")
			data := pterm.TableData{{"Name", "Enabled", "Description"}}
			for _, m := range cfg.ModulesInOrder() {
				enabled := "✓"
				if !m.Enabled {
					enabled = "✗"
				}
				data = append(data, []string{m.Name, enabled, m.Description})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}
}
