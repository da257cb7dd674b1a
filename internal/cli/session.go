package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session inspection commands",
	}

	cmd.AddCommand(newSessionShowCmd())
	cmd.AddCommand(newSessionPermissionsCmd())
	cmd.AddCommand(newSessionTeamsCmd())

	return cmd
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get("/api/v1/session", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionPermissionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "permissions",
		Short: "Show the session's permission snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Permissions

			if err := client.Get("/api/v1/session/permissions", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionTeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "Show the teams the session can manage",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ManagedTeams

			if err := client.Get("/api/v1/session/teams", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPersonaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "persona <role>",
		Short: "Switch the demo persona (use 'default' to clear)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"role": args[0]}
			var result Permissions

			if err := client.Put("/api/v1/session/persona", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newCanCmd() *cobra.Command {
	var teamID string

	cmd := &cobra.Command{
		Use:   "can <action>",
		Short: "Check whether the session may perform an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{"action": {args[0]}}
			if teamID != "" {
				query.Set("team_id", teamID)
			}

			var result CanResult
			if err := client.Get("/api/v1/session/can?"+query.Encode(), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "Team the target resource belongs to")

	return cmd
}
