package commands

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mcdev12/pickpool/go/internal/seasons"
)

var seasonCmd = &cobra.Command{
	Use:   "season",
	Short: "Create, schedule and activate seasons",
}

var seasonCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a season and generate its schedule",
	RunE:  runSeasonCreate,
}

var seasonListCmd = &cobra.Command{
	Use:   "list",
	Short: "List seasons",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getAndPrint(cmd, "/seasons")
	},
}

var seasonActivateCmd = &cobra.Command{
	Use:   "activate <season-id>",
	Short: "Make a season the active one",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeasonPost("activate"),
}

var seasonScheduleCmd = &cobra.Command{
	Use:   "schedule <season-id>",
	Short: "Generate the schedule for an existing season",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeasonPost("schedule"),
}

var (
	seasonName     string
	seasonStarts   string
	seasonEnds     string
	seasonActivate bool
)

func init() {
	rootCmd.AddCommand(seasonCmd)
	seasonCmd.AddCommand(seasonCreateCmd, seasonListCmd, seasonActivateCmd, seasonScheduleCmd)

	seasonCreateCmd.Flags().StringVar(&seasonName, "name", "", "season name")
	seasonCreateCmd.Flags().StringVar(&seasonStarts, "starts", "", "first day (YYYY-MM-DD)")
	seasonCreateCmd.Flags().StringVar(&seasonEnds, "ends", "", "last day (YYYY-MM-DD)")
	seasonCreateCmd.Flags().BoolVar(&seasonActivate, "activate", false, "make the new season active")
	_ = seasonCreateCmd.MarkFlagRequired("name")
}

func runSeasonCreate(cmd *cobra.Command, args []string) error {
	req := seasons.CreateSeasonRequest{Name: seasonName, Activate: seasonActivate}
	var err error
	if req.StartsAt, err = parseDay(seasonStarts); err != nil {
		return fmt.Errorf("invalid --starts: %w", err)
	}
	if req.EndsAt, err = parseDay(seasonEnds); err != nil {
		return fmt.Errorf("invalid --ends: %w", err)
	}

	c, err := newClient()
	if err != nil {
		return err
	}
	var resp seasons.CreateSeasonResponse
	if err := c.do(cmd.Context(), http.MethodPost, "/seasons", req, &resp); err != nil {
		return err
	}
	return printJSON(resp)
}

func runSeasonPost(action string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid season id: %w", err)
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		var out interface{}
		if err := c.do(cmd.Context(), http.MethodPost, fmt.Sprintf("/seasons/%s/%s", id, action), nil, &out); err != nil {
			return err
		}
		return printJSON(out)
	}
}

func getAndPrint(cmd *cobra.Command, path string) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	var out interface{}
	if err := c.do(cmd.Context(), http.MethodGet, path, nil, &out); err != nil {
		return err
	}
	return printJSON(out)
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
