package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"iva/internal/agent"
	"iva/internal/display"
	"iva/internal/imaging"
)

var (
	askImagePath string
	askIdentity  string
	askShowSteps bool
	askMetrics   bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer one question about one image and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := imaging.Load(askImagePath)
		if err != nil {
			return err
		}
		question := strings.Join(args, " ")

		updates, mm, err := app.Agent.Invoke(cmd.Context(), question, img, agent.InvokeConfig{
			Identity: askIdentity,
			MaxPlans: app.Cfg.Agent.MaxPlans,
		})
		if err != nil {
			return err
		}

		if askShowSteps {
			for _, u := range updates {
				fmt.Println(display.FormatStepUpdate(u))
			}
		}
		fmt.Println(display.FormatAnswer(updates[len(updates)-1]))
		if askMetrics {
			fmt.Println(display.FormatInvocationMetrics(mm))
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askImagePath, "image", "i", "", "path to the image file (required)")
	askCmd.Flags().StringVar(&askIdentity, "identity", "default", "identity that keys the telemetry namespace")
	askCmd.Flags().BoolVar(&askShowSteps, "show-steps", false, "print every node update, not just the answer")
	askCmd.Flags().BoolVar(&askMetrics, "metrics", false, "print per-node timings")
	_ = askCmd.MarkFlagRequired("image")
}
