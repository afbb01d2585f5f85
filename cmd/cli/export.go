package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"unbelong/internal/mockapi"
	"unbelong/pkg/models"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var illustrationsOut, worksOut string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export illustrations and works as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fetchAll(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if err := writeIllustrationsCSV(illustrationsOut, f.Illustrations); err != nil {
				return fmt.Errorf("export illustrations: %w", err)
			}
			if err := writeWorksCSV(worksOut, f.Works); err != nil {
				return fmt.Errorf("export works: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d illustrations to %s and %d works to %s\n",
				len(f.Illustrations), illustrationsOut, len(f.Works), worksOut)
			return nil
		},
	}
	cmd.Flags().StringVar(&illustrationsOut, "illustrations", "data/illustrations.csv", "output CSV path for illustrations")
	cmd.Flags().StringVar(&worksOut, "works", "data/works.csv", "output CSV path for works")
	return cmd
}

// newSnapshotCmd writes the live API contents in the format mock-api serves.
func newSnapshotCmd(opts *rootOptions) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save the API contents as a mock-api fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fetchAll(cmd.Context(), opts)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(f, "", "  ")
			if err != nil {
				return fmt.Errorf("encode fixture: %w", err)
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(outPath, append(b, '\n'), 0o644); err != nil {
				return fmt.Errorf("write fixture: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d illustrations and %d works to %s\n",
				len(f.Illustrations), len(f.Works), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "data/fixtures.json", "output JSON path")
	return cmd
}

func fetchAll(ctx context.Context, opts *rootOptions) (mockapi.Fixture, error) {
	client, err := opts.client()
	if err != nil {
		return mockapi.Fixture{}, err
	}
	items, err := client.ListIllustrations(ctx)
	if err != nil {
		return mockapi.Fixture{}, fmt.Errorf("list illustrations: %w", err)
	}
	works, err := client.ListWorks(ctx, "")
	if err != nil {
		return mockapi.Fixture{}, fmt.Errorf("list works: %w", err)
	}
	return mockapi.Fixture{Illustrations: items, Works: works}, nil
}

func writeIllustrationsCSV(path string, items []models.Illustration) error {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ID,
			it.WorkID,
			it.Title,
			it.Slug,
			string(it.Status),
			it.ImageID.ID(),
			it.Tags,
			strconv.FormatInt(it.ViewCount, 10),
			strconv.FormatInt(it.CreatedAt, 10),
			strconv.FormatInt(it.UpdatedAt, 10),
		})
	}
	return writeCSV(path, []string{"id", "work_id", "title", "slug", "status", "image_id", "tags", "view_count", "created_at", "updated_at"}, rows)
}

func writeWorksCSV(path string, works []models.Work) error {
	rows := make([][]string, 0, len(works))
	for _, w := range works {
		cover := ""
		if w.CoverImageID != nil {
			cover = w.CoverImageID.ID()
		}
		rows = append(rows, []string{
			w.ID,
			w.Title,
			w.Slug,
			string(w.Type),
			string(w.Status),
			cover,
			strconv.FormatInt(w.CreatedAt, 10),
			strconv.FormatInt(w.UpdatedAt, 10),
		})
	}
	return writeCSV(path, []string{"id", "title", "slug", "type", "status", "cover_image_id", "created_at", "updated_at"}, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}
