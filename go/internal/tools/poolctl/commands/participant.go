package commands

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mcdev12/pickpool/go/internal/participants"
)

var participantCmd = &cobra.Command{
	Use:   "participant",
	Short: "Manage pool participants",
}

var participantAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a participant and provision their no-picks",
	RunE:  runParticipantAdd,
}

var participantListCmd = &cobra.Command{
	Use:   "list",
	Short: "List participants",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getAndPrint(cmd, "/participants")
	},
}

var (
	participantReq  participants.CreateParticipantRequest
	participantTeam string
)

func init() {
	rootCmd.AddCommand(participantCmd)
	participantCmd.AddCommand(participantAddCmd, participantListCmd)

	f := participantAddCmd.Flags()
	f.StringVar(&participantReq.Username, "username", "", "unique username")
	f.StringVar(&participantReq.Email, "email", "", "unique email address")
	f.StringVar(&participantReq.FirstName, "first-name", "", "first name")
	f.StringVar(&participantReq.LastName, "last-name", "", "last name")
	f.StringVar(&participantReq.Timezone, "timezone", "", "IANA timezone")
	f.StringVar(&participantTeam, "favorite-team", "", "favorite team id")
	_ = participantAddCmd.MarkFlagRequired("username")
	_ = participantAddCmd.MarkFlagRequired("email")
}

func runParticipantAdd(cmd *cobra.Command, args []string) error {
	req := participantReq
	if participantTeam != "" {
		id, err := uuid.Parse(participantTeam)
		if err != nil {
			return fmt.Errorf("invalid --favorite-team: %w", err)
		}
		req.FavoriteTeamID = &id
	}

	c, err := newClient()
	if err != nil {
		return err
	}
	var resp participants.CreateParticipantResponse
	if err := c.do(cmd.Context(), http.MethodPost, "/participants", req, &resp); err != nil {
		return err
	}
	return printJSON(resp)
}
