package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"live-quiz-service/internal/scoring"
)

// NewScoreCmd prints the points an answer is worth.
func NewScoreCmd() *cobra.Command {
	var (
		correct bool
		budget  float64
		used    float64
	)
	cmd := &cobra.Command{
		Use:     "score",
		Short:   "Compute the points for one answer",
		Example: "  live-quiz score --correct --budget 60 --used 12",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), scoring.Score(correct, budget, used))
			return err
		},
	}
	cmd.Flags().BoolVar(&correct, "correct", false, "whether the answer was correct")
	cmd.Flags().Float64Var(&budget, "budget", 0, "time budget of the question in seconds")
	cmd.Flags().Float64Var(&used, "used", 0, "seconds the participant took to answer")
	return cmd
}
