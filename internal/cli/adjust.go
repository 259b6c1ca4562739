package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"photo-editor/internal/core/image"
	"photo-editor/internal/pkg/common"
)

func newAdjustCmd(a *app) *cobra.Command {
	values := make(map[image.Adjustment]*float64, len(image.Order))

	cmd := &cobra.Command{
		Use:   "adjust <input> <output>",
		Short: "Apply tonal and color adjustments to a local image",
		Long: `Applies the same adjustment pipeline as POST /edit to a local file.

Only flags given on the command line are applied; each value is a
non-negative multiplier where 1 means no change.`,
		Example: `  photo-editor adjust in.jpg out.jpg --exposure 1.2 --shadows 1.5
  photo-editor adjust in.png out.png --saturation 0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			adj := image.Adjustments{}
			for _, name := range image.Order {
				if cmd.Flags().Changed(string(name)) {
					adj[name] = *values[name]
				}
			}
			if err := adj.Validate(); err != nil {
				return err
			}

			src, err := a.readImage(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			out := image.Apply(src, adj)
			if err := a.writeImage(args[1], out); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[1], err)
			}

			common.LogImageProcessing("info", "adjust",
				zap.String("input", args[0]),
				zap.String("output", args[1]),
				zap.String("adjustments", adj.String()),
			)
			return nil
		},
	}

	for _, name := range image.Order {
		values[name] = cmd.Flags().Float64(string(name), 1.0, fmt.Sprintf("%s strength", name))
	}

	return cmd
}
