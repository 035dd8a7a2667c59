package cli

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"iva/internal/agent"
	"iva/internal/config"
	"iva/internal/display"
	"iva/internal/imaging"
	"iva/internal/listener"
	"iva/internal/memory"
)

// App is the wired application handed to the CLI by main.
type App struct {
	Agent *agent.Agent
	Store memory.Store
	Cfg   *config.Config
}

var app *App

var rootCmd = &cobra.Command{
	Use:   "iva",
	Short: "A visual question answering agent",
	Long: `iva answers questions about images by planning a sequence of vision
tool calls, executing them, and judging whether the collected evidence
answers the question. Run without a subcommand for an interactive session.`,
	Run: func(cmd *cobra.Command, args []string) {
		runChat(cmd.Context())
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive session (the default)",
	Run: func(cmd *cobra.Command, args []string) {
		runChat(cmd.Context())
	},
}

func Execute(a *App) {
	app = a
	rootCmd.AddCommand(chatCmd, askCmd, batchCmd, memoriesCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runChat(ctx context.Context) {
	if err := listener.Init(); err != nil {
		fmt.Println("Failed to init terminal input:", err)
		os.Exit(1)
	}
	defer listener.Close()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nGoodbye!")
		os.Exit(0)
	}()

	listener.AsyncPrintln("Load an image with 'load <path>', then ask questions about it.")
	listener.AsyncPrintln("(type 'exit' or press Ctrl+C to quit)")

	var img image.Image
	identity := "chat"

	for {
		input := listener.GetInput()
		switch {
		case input == "":
			continue
		case strings.EqualFold(input, "exit"):
			fmt.Println("Goodbye!")
			return
		case strings.HasPrefix(input, "load "):
			path := strings.TrimSpace(strings.TrimPrefix(input, "load "))
			if img != nil && !listener.AskYesNo("Replace the current image?") {
				continue
			}
			loaded, err := imaging.Load(path)
			if err != nil {
				listener.AsyncPrintln(fmt.Sprintf("[Load FAILED] %v", err))
				continue
			}
			img = loaded
			listener.AsyncPrintln(fmt.Sprintf("Loaded %s (%dx%d)", path,
				img.Bounds().Dx(), img.Bounds().Dy()))
		default:
			if img == nil {
				listener.AsyncPrintln("No image loaded yet. Use 'load <path>' first.")
				continue
			}
			question := input
			current := img
			// Answer in the background so the prompt stays responsive.
			go func() {
				updates, mm, err := app.Agent.Invoke(ctx, question, current, agent.InvokeConfig{
					Identity: identity,
					MaxPlans: app.Cfg.Agent.MaxPlans,
				})
				if err != nil {
					listener.AsyncPrintln(fmt.Sprintf("[Question FAILED] %v", err))
					return
				}
				for _, u := range updates {
					if fields, ok := u[string(agent.NodeStructurePlan)]; ok {
						if steps, ok := fields["plan_structure"].([]agent.PlanStep); ok {
							listener.AsyncPrintln(display.FormatPlan(steps))
						}
					}
				}
				listener.AsyncPrintln(display.FormatAnswer(updates[len(updates)-1]))
				listener.AsyncPrintln(display.FormatInvocationMetrics(mm))
			}()
		}
	}
}
