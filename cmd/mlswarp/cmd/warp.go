package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/mlswarp/internal/pointset"
	"github.com/MeKo-Tech/mlswarp/internal/utils"
	"github.com/MeKo-Tech/mlswarp/internal/warp"
)

// warpCmd represents the warp command.
var warpCmd = &cobra.Command{
	Use:   "warp <image>",
	Short: "Warp an image according to a control-point correspondence file",
	Long: `Warp an image file using moving least squares. The --points file holds two
parallel arrays of [x, y] pairs: the source positions of the control points
and the positions they should move to.

Supported image formats: JPEG, PNG, BMP

Examples:
  mlswarp warp face.png --points smile.yaml
  mlswarp warp face.png --points smile.yaml --mode similarity --output out.png
  mlswarp warp poster.jpg --points pin.json --subresolution 4 --workers 8`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		pointsFile, _ := cmd.Flags().GetString("points")
		if pointsFile == "" {
			return errors.New("no control points provided (use --points)")
		}

		set, err := pointset.Load(pointsFile)
		if err != nil {
			return err
		}

		img, meta, err := utils.LoadImage(args[0])
		if err != nil {
			return err
		}
		slog.Debug("image loaded",
			"path", meta.Path, "format", meta.Format,
			"width", meta.Width, "height", meta.Height,
			"control_points", len(set.Source))

		img, err = utils.FitImage(img, cfg.Warp.MaxWidth, cfg.Warp.MaxHeight)
		if err != nil {
			return err
		}

		opts := warp.Options{Workers: cfg.Warp.Workers}
		kind := cfg.Kind()
		factor := cfg.Warp.Subresolution

		start := time.Now()
		var out = img
		if factor == 1 {
			out, err = warp.Dense(img, set.Source, set.Destination, kind, opts)
		} else {
			out, err = warp.Sparse(img, set.Source, set.Destination, kind, factor, opts)
		}
		if err != nil {
			return err
		}
		slog.Debug("warp complete",
			"mode", kind.String(), "subresolution", factor,
			"elapsed", time.Since(start))

		if err := utils.SaveImage(out, cfg.Output.File); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfg.Output.File); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(warpCmd)

	warpCmd.Flags().StringP("points", "p", "", "control-point correspondence file (YAML or JSON)")
	warpCmd.Flags().StringP("mode", "m", "rigid", "deformation kind: affine, similarity or rigid")
	warpCmd.Flags().IntP("subresolution", "s", 1, "anchor grid spacing in pixels (1 = solve every pixel)")
	warpCmd.Flags().Int("workers", 0, "worker pool size (0 = all CPUs)")
	warpCmd.Flags().StringP("output", "o", "warped.png", "output image path")
	warpCmd.Flags().Int("max-width", 0, "fit input image to this width before warping (0 = off)")
	warpCmd.Flags().Int("max-height", 0, "fit input image to this height before warping (0 = off)")

	_ = viper.BindPFlag("warp.mode", warpCmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("warp.subresolution", warpCmd.Flags().Lookup("subresolution"))
	_ = viper.BindPFlag("warp.workers", warpCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("warp.max_width", warpCmd.Flags().Lookup("max-width"))
	_ = viper.BindPFlag("warp.max_height", warpCmd.Flags().Lookup("max-height"))
	_ = viper.BindPFlag("output.file", warpCmd.Flags().Lookup("output"))
}
