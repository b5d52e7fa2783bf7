package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/avtools-cli/internal/engine"
	"github.com/mlihgenel/avtools-cli/internal/installer"
	"github.com/mlihgenel/avtools-cli/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Harici araçların kurulumunu kontrol eder",
	Long: `ffmpeg ve ffprobe araçlarının kurulu olup olmadığını, yollarını ve
sürümlerini gösterir; eksik araçlar için kurulum önerisi verir.

Örnekler:
  avtools-cli doctor
  avtools-cli doctor --output-format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := resolveOutputFormat(); err != nil {
			return paramErr(err)
		}

		eng := engine.NewEngine(verbose)
		tools := eng.CheckTools()

		if isJSONOutput() {
			type toolStatus struct {
				Name      string `json:"name"`
				Available bool   `json:"available"`
				Path      string `json:"path,omitempty"`
				Version   string `json:"version,omitempty"`
			}
			payload := make([]toolStatus, 0, len(tools))
			for _, t := range tools {
				payload = append(payload, toolStatus{Name: t.Name, Available: t.Available, Path: t.Path, Version: t.Version})
			}
			return printJSON(payload)
		}

		ui.PrintBanner()

		rows := make([][]string, 0, len(tools))
		missing := 0
		for _, t := range tools {
			status := ui.IconSuccess + " kurulu"
			detail := t.Version
			if !t.Available {
				status = ui.IconError + " eksik"
				detail = "-"
				missing++
			}
			rows = append(rows, []string{t.Name, status, t.Path, detail})
		}

		ui.PrintTable([]string{"Araç", "Durum", "Yol", "Sürüm"}, rows)

		if missing == 0 {
			ui.PrintSuccess("Tüm araçlar hazır.")
			return nil
		}

		fmt.Println()
		ui.PrintWarning("Eksik araçlar bulundu. Kurulum önerisi:")
		info := installer.GetInstallInfo("ffmpeg")
		if info.Supported {
			fmt.Printf("  %s\n", info.Description)
		} else {
			fmt.Printf("  Manuel kurulum: %s\n", info.ManualURL)
		}
		return fmt.Errorf("%d araç eksik", missing)
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
