package cli

import (
	"github.com/spf13/cobra"
)

func newClubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "club",
		Short: "Club management commands",
	}

	cmd.AddCommand(newClubCreateCmd())
	cmd.AddCommand(newClubGetCmd())
	cmd.AddCommand(newClubUpdateCmd())

	return cmd
}

func newClubCreateCmd() *cobra.Command {
	var name, sport, county, color string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a club (the creator becomes its admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"name":   name,
				"sport":  sport,
				"county": county,
				"color":  color,
			}
			var result Club

			if err := client.Post("/api/v1/clubs", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Club name (required)")
	cmd.Flags().StringVar(&sport, "sport", "", "Sport")
	cmd.Flags().StringVar(&county, "county", "", "County")
	cmd.Flags().StringVar(&color, "color", "", "Club color")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newClubGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <club-id>",
		Short: "Show a club",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Club

			if err := client.Get("/api/v1/clubs/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newClubUpdateCmd() *cobra.Command {
	var name, sport, county, color string

	cmd := &cobra.Command{
		Use:   "update <club-id>",
		Short: "Update club settings (requires manage_club)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{}
			if name != "" {
				req["name"] = name
			}
			if sport != "" {
				req["sport"] = sport
			}
			if county != "" {
				req["county"] = county
			}
			if color != "" {
				req["color"] = color
			}

			var result Club
			if err := client.Patch("/api/v1/clubs/"+args[0], req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Club name")
	cmd.Flags().StringVar(&sport, "sport", "", "Sport")
	cmd.Flags().StringVar(&county, "county", "", "County")
	cmd.Flags().StringVar(&color, "color", "", "Club color")

	return cmd
}
