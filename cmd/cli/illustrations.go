package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"unbelong/internal/web"
	"unbelong/pkg/models"
)

func newIllustrationsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "illustrations",
		Aliases: []string{"ill"},
		Short:   "List or show illustrations",
	}
	cmd.AddCommand(newIllustrationsListCmd(opts), newIllustrationsGetCmd(opts))
	return cmd
}

func newIllustrationsListCmd(opts *rootOptions) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List illustrations, optionally filtered by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && !models.IllustrationStatus(status).Valid() {
				return fmt.Errorf("unknown status %q (want published, draft or archived)", status)
			}
			client, err := opts.client()
			if err != nil {
				return err
			}
			items, err := client.ListIllustrations(cmd.Context())
			if err != nil {
				return fmt.Errorf("list illustrations: %w", err)
			}
			if status != "" {
				items = models.FilterByStatus(items, models.IllustrationStatus(status))
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, items)
			}
			if len(items) == 0 {
				fmt.Fprintln(out, "No illustrations found.")
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, it := range items {
				rows = append(rows, []string{
					it.ID,
					truncate(it.Title, 40),
					it.Slug,
					string(it.Status),
					it.ImageID.Kind().String(),
					strconv.FormatInt(it.ViewCount, 10),
					web.FormatDate(it.CreatedAt),
				})
			}
			printTable(out, []string{"ID", "Title", "Slug", "Status", "Image", "Views", "Posted"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only show this status (published, draft, archived)")
	return cmd
}

func newIllustrationsGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id-or-slug>",
		Short: "Show one illustration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			ill, err := client.GetIllustration(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get illustration %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, ill)
			}
			tags, err := ill.ParsedTags()
			if err != nil {
				tags = []string{"(malformed: " + ill.Tags + ")"}
			}
			rows := [][]string{
				{"id", ill.ID},
				{"title", ill.Title},
				{"slug", ill.Slug},
				{"status", string(ill.Status)},
				{"work", ill.WorkID},
				{"image", ill.ImageID.ID() + " (" + ill.ImageID.Kind().String() + ")"},
				{"tags", fmt.Sprint(tags)},
				{"views", web.FormatCount(ill.ViewCount)},
				{"posted", web.FormatDate(ill.CreatedAt)},
			}
			printTable(out, []string{"Field", "Value"}, rows)
			return nil
		},
	}
}
