package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"unbelong/pkg/imageurl"
)

func newImageURLCmd(opts *rootOptions) *cobra.Command {
	var (
		o      imageurl.Options
		fit    string
		format string
	)
	cmd := &cobra.Command{
		Use:   "image-url <image-id>",
		Short: "Print the delivery URL for an image id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fit != "" {
				o.Fit = imageurl.Fit(fit)
				if !o.Fit.Valid() {
					return fmt.Errorf("unknown fit %q", fit)
				}
			}
			if format != "" {
				o.Format = imageurl.Format(format)
				if !o.Format.Valid() {
					return fmt.Errorf("unknown format %q", format)
				}
			}

			ref := imageurl.Parse(args[0])
			u := imageurl.Default().URL(ref, o)
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, map[string]string{"id": ref.ID(), "kind": ref.Kind().String(), "url": u})
			}
			fmt.Fprintln(out, u)
			return nil
		},
	}
	cmd.Flags().IntVar(&o.Width, "width", 0, "width in pixels")
	cmd.Flags().IntVar(&o.Height, "height", 0, "height in pixels")
	cmd.Flags().IntVar(&o.Quality, "quality", 0, "quality 1-100")
	cmd.Flags().StringVar(&fit, "fit", "", "scale-down, contain, cover, crop or pad")
	cmd.Flags().StringVar(&format, "format", "", "auto, webp, avif or json")
	return cmd
}
