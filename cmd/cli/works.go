package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"unbelong/internal/web"
	"unbelong/pkg/models"
)

func newWorksCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "works",
		Short: "List or show works",
	}
	cmd.AddCommand(newWorksListCmd(opts), newWorksGetCmd(opts))
	return cmd
}

func newWorksListCmd(opts *rootOptions) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List works, optionally of one type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			works, err := client.ListWorks(cmd.Context(), models.Category(category))
			if err != nil {
				return fmt.Errorf("list works: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, works)
			}
			if len(works) == 0 {
				fmt.Fprintln(out, "No works found.")
				return nil
			}
			rows := make([][]string, 0, len(works))
			for _, w := range works {
				rows = append(rows, []string{
					w.ID,
					truncate(w.Title, 40),
					w.Slug,
					web.CategoryLabel(w.Type),
					string(w.Status),
				})
			}
			printTable(out, []string{"ID", "Title", "Slug", "Type", "Status"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "type", "", "only show this type (manga, illustration)")
	return cmd
}

func newWorksGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			w, err := client.GetWork(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get work %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, w)
			}
			cover := "-"
			if w.CoverImageID != nil {
				cover = w.CoverImageID.ID()
			}
			printTable(out, []string{"Field", "Value"}, [][]string{
				{"id", w.ID},
				{"title", w.Title},
				{"slug", w.Slug},
				{"type", string(w.Type)},
				{"status", string(w.Status)},
				{"cover", cover},
				{"updated", web.FormatDate(w.UpdatedAt)},
			})
			return nil
		},
	}
}
