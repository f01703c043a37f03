package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"timecop/internal/clickup"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the ClickUp connection",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(true)

	ctx := cmd.Context()
	client := clickup.NewClient(ctx, cfg.ClickUp)

	if err := client.CheckConnection(ctx); err != nil {
		return fmt.Errorf("clickup: disconnected: %w", err)
	}

	members, err := client.GetTeamMembers(ctx)
	if err != nil {
		return fmt.Errorf("clickup: listing members: %w", err)
	}

	fmt.Printf("ClickUp: connected (team %s, %d members)\n", cfg.ClickUp.TeamID, len(members))
	return nil
}
