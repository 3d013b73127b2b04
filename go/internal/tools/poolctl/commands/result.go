package commands

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mcdev12/pickpool/go/internal/models"
)

var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Record contest results",
}

var resultSaveCmd = &cobra.Command{
	Use:   "save <contest-id>",
	Short: "Save a final score and rescore the contest",
	Args:  cobra.ExactArgs(1),
	RunE:  runResultSave,
}

var resultListCmd = &cobra.Command{
	Use:   "list <period-id>",
	Short: "List a period's contests with their outcomes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid period id: %w", err)
		}
		return getAndPrint(cmd, fmt.Sprintf("/periods/%s/contests", id))
	},
}

var result models.ContestResult

func init() {
	rootCmd.AddCommand(resultCmd)
	resultCmd.AddCommand(resultSaveCmd, resultListCmd)

	resultSaveCmd.Flags().IntVar(&result.HomeScore, "home", 0, "home score")
	resultSaveCmd.Flags().IntVar(&result.VisitorScore, "visitor", 0, "visitor score")
	resultSaveCmd.Flags().BoolVar(&result.RegulationTie, "regulation-tie", false, "the game was tied at the end of regulation")
}

func runResultSave(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid contest id: %w", err)
	}
	c, err := newClient()
	if err != nil {
		return err
	}
	var out interface{}
	if err := c.do(cmd.Context(), http.MethodPut, fmt.Sprintf("/contests/%s/result", id), result, &out); err != nil {
		return err
	}
	return printJSON(out)
}
