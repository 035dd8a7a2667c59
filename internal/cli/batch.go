package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"iva/internal/agent"
	"iva/internal/imaging"
)

// batchJob is one entry of the jobs file: a question about an image, run
// under its own identity.
type batchJob struct {
	ID       string `json:"id"`
	Image    string `json:"image"`
	Question string `json:"question"`
}

type batchResult struct {
	ID         string   `json:"id"`
	Answer     []string `json:"answer,omitempty"`
	AnswerFlag int      `json:"answer_flag"`
	Error      string   `json:"error,omitempty"`
}

var batchConcurrency int

var batchCmd = &cobra.Command{
	Use:   "batch [jobs.json]",
	Short: "Run a file of image questions concurrently",
	Long: `batch reads a JSON array of jobs ({"id", "image", "question"}), answers
them concurrently, and writes a JSON array of results to stdout. A failed
job is reported in its result instead of aborting the rest.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var jobs []batchJob
		if err := json.Unmarshal(raw, &jobs); err != nil {
			return fmt.Errorf("parse jobs file: %w", err)
		}

		results := make([]batchResult, len(jobs))
		var mu sync.Mutex

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(batchConcurrency)
		for i, job := range jobs {
			g.Go(func() error {
				res := runJob(ctx, job)
				mu.Lock()
				results[i] = res
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func runJob(ctx context.Context, job batchJob) batchResult {
	res := batchResult{ID: job.ID}

	img, err := imaging.Load(job.Image)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	updates, _, err := app.Agent.Invoke(ctx, job.Question, img, agent.InvokeConfig{
		Identity: job.ID,
		MaxPlans: app.Cfg.Agent.MaxPlans,
	})
	if err != nil {
		res.Error = err.Error()
		return res
	}

	final := updates[len(updates)-1][string(agent.NodeResponse)]
	if answer, ok := final["final_result"].([]string); ok {
		res.Answer = answer
	}
	if flag, ok := final["answer_flag"].(int); ok {
		res.AnswerFlag = flag
	}
	return res
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "maximum jobs in flight")
}
