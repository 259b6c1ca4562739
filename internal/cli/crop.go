package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"photo-editor/internal/core/image"
	"photo-editor/internal/pkg/common"
)

func newCropCmd(a *app) *cobra.Command {
	var r image.Rect

	cmd := &cobra.Command{
		Use:   "crop <input> <output>",
		Short: "Crop a local image to a rectangle",
		Long: `Crops a local file with the same clamping rules as POST /crop.
The rectangle is clamped to the image; an empty result is an error.`,
		Example: `  photo-editor crop in.png out.png --x 10 --y 10 --width 200 --height 100`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.readImage(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			out, clamped, err := image.Crop(src, r)
			if err != nil {
				return err
			}
			if err := a.writeImage(args[1], out); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[1], err)
			}

			common.LogImageProcessing("info", "crop",
				zap.String("input", args[0]),
				zap.String("output", args[1]),
				zap.Any("clamped", clamped),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "%dx%d\n", clamped.Width, clamped.Height)
			return nil
		},
	}

	cmd.Flags().IntVar(&r.X, "x", 0, "Left edge")
	cmd.Flags().IntVar(&r.Y, "y", 0, "Top edge")
	cmd.Flags().IntVar(&r.Width, "width", 0, "Width in pixels")
	cmd.Flags().IntVar(&r.Height, "height", 0, "Height in pixels")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")

	return cmd
}
