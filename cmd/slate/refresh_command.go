package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"slate/internal/scheduler"
)

func newRefreshCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh [entry-id]",
		Short: "Re-fetch catalog metadata for entries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(runCtx context.Context, svc *scheduler.Service) error {
				if len(args) == 1 {
					entryID, err := parseEntryID(args[0])
					if err != nil {
						return err
					}
					entry, err := svc.Refresh(runCtx, entryID)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %s\n", entry.Title)
					return nil
				}

				refreshed, err := svc.RefreshAll(runCtx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %d entries\n", refreshed)
				return nil
			})
		},
	}
}
