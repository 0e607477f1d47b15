package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrylevesque/gallery/internal/gallery"
	"github.com/harrylevesque/gallery/internal/models"
	"github.com/harrylevesque/gallery/internal/ui"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the images held by the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			table := ui.NewTable("Images", ui.DefaultStyles())
			ctrl := gallery.NewController(client, table, a.logger.Named("gallery"))

			if err := ctrl.FetchImages(cmd.Context()); err != nil {
				return errReported
			}
			fmt.Fprint(cmd.OutOrStdout(), table.View())
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id...]",
		Short: "Delete images by id and show the refreshed list",
		Long: `Deletes each image in turn. After every successful delete the list is
fetched again; the table printed at the end is the last fetch.

Example:
  gallery delete 3f2a9c 77b01e`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			table := ui.NewTable("Images", ui.DefaultStyles())
			ctrl := gallery.NewController(client, table, a.logger.Named("gallery"))

			failed := 0
			for _, id := range args {
				action := gallery.Action{Kind: gallery.ActionDelete, ImageID: models.ImageID(id)}
				if err := ctrl.Dispatch(cmd.Context(), action); err != nil {
					failed++
				}
			}
			if len(table.Rows()) > 0 || failed < len(args) {
				fmt.Fprint(cmd.OutOrStdout(), table.View())
			}
			if failed > 0 {
				return errReported
			}
			return nil
		},
	}
}
