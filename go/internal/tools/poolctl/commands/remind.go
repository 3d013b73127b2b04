package commands

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mcdev12/pickpool/go/internal/reminders"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Nudge participants who have not picked",
}

var remindListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show who would be reminded for the current period",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getAndPrint(cmd, "/reminders/recipients")
	},
}

var remindSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send reminders for the current period",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		var res reminders.Result
		if err := c.do(cmd.Context(), http.MethodPost, "/reminders/send", nil, &res); err != nil {
			return err
		}
		fmt.Printf("%s: %d recipients, %d sent\n", res.PeriodName, len(res.Recipients), res.Sent)
		return nil
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "current",
	Short: "Resolve the current period, promoting the next one if the active window closed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getAndPrint(cmd, "/current")
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings [season-id]",
	Short: "Show standings for the active season, or the given one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return getAndPrint(cmd, "/seasons/"+args[0]+"/standings")
		}
		return getAndPrint(cmd, "/standings")
	},
}

func init() {
	rootCmd.AddCommand(remindCmd, reconcileCmd, standingsCmd)
	remindCmd.AddCommand(remindListCmd, remindSendCmd)
}
