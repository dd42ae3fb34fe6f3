package main

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder for convert
	_ "image/jpeg" // register JPEG decoder for convert
	_ "image/png"  // register PNG decoder for convert
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/anas-shakeel/bmpkit/internal/adjustments"
	"github.com/anas-shakeel/bmpkit/internal/bmp"
	"github.com/anas-shakeel/bmpkit/internal/filters"
	"github.com/anas-shakeel/bmpkit/internal/logging"
	"github.com/anas-shakeel/bmpkit/internal/utils"
)

func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE...",
		Short: "Print header metadata",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, path := range args {
				b, err := bmp.ReadBitmap(path)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				b.PrintMetadata(cmd.OutOrStdout())
			}
			return nil
		},
	}
}

func (a *app) newShowCmd() *cobra.Command {
	var cols, rows int

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Render the image in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cols <= 0 || rows <= 0 {
				return fmt.Errorf("--cols and --rows must be positive")
			}

			b, err := bmp.ReadBitmap(args[0])
			if err != nil {
				return err
			}
			if b.Height() == 0 {
				return fmt.Errorf("%s: no pixel rows to show", args[0])
			}

			w, h := utils.FitWithin(b.Width(), b.Height(), cols, rows)
			preview, err := adjustments.Resize(b, w, h)
			if err != nil {
				return err
			}
			preview.PrintBitmap(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().IntVar(&cols, "cols", 40, "maximum width in terminal cells")
	cmd.Flags().IntVar(&rows, "rows", 40, "maximum height in terminal cells")
	return cmd
}

func (a *app) newGenerateCmd() *cobra.Command {
	var mode, width, height, bitDepth int

	cmd := &cobra.Command{
		Use:   "generate OUT",
		Short: "Create a solid gray image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags that were not given fall back to the configured defaults
			d := a.cfg.Defaults
			if !cmd.Flags().Changed("mode") {
				mode = d.Mode
			}
			if !cmd.Flags().Changed("width") {
				width = d.Width
			}
			if !cmd.Flags().Changed("height") {
				height = d.Height
			}
			if !cmd.Flags().Changed("bit-depth") {
				bitDepth = d.BitDepth
			}

			if err := a.cfg.CheckDimensions(width, height); err != nil {
				return err
			}
			b, err := bmp.Generate(mode, width, height, bitDepth)
			if err != nil {
				return err
			}
			return a.save(b, args[0])
		},
	}

	cmd.Flags().IntVarP(&mode, "mode", "m", 255, "gray level 0-255 (out of range values are clamped)")
	cmd.Flags().IntVarP(&width, "width", "W", 800, "width in pixels")
	cmd.Flags().IntVarP(&height, "height", "H", 600, "height in pixels")
	cmd.Flags().IntVarP(&bitDepth, "bit-depth", "b", 24, "bits per pixel (24 or 32)")
	return cmd
}

func (a *app) newResizeCmd() *cobra.Command {
	var widthExpr, heightExpr, output, outDir string

	cmd := &cobra.Command{
		Use:   "resize IN...",
		Short: "Resample images to new dimensions",
		Long: `Resample one or more images with nearest-neighbour stepping.

--width and --height accept expressions over the source size w and h,
for example "w/2", "h*3", "640" or "ceil(w/3)".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return fmt.Errorf("--output can only be used with a single input, use --out-dir")
			}

			widthDim, err := parseDimension(widthExpr)
			if err != nil {
				return fmt.Errorf("--width: %w", err)
			}
			heightDim, err := parseDimension(heightExpr)
			if err != nil {
				return fmt.Errorf("--height: %w", err)
			}

			// Every input is decoded, resized and saved independently
			g := new(errgroup.Group)
			g.SetLimit(runtime.GOMAXPROCS(0))
			for _, in := range args {
				g.Go(func() error {
					b, err := bmp.ReadBitmap(in)
					if err != nil {
						return err
					}

					w, err := widthDim.eval(b.Width(), b.Height())
					if err != nil {
						return fmt.Errorf("%s: width: %w", in, err)
					}
					h, err := heightDim.eval(b.Width(), b.Height())
					if err != nil {
						return fmt.Errorf("%s: height: %w", in, err)
					}
					if err := a.cfg.CheckDimensions(w, h); err != nil {
						return fmt.Errorf("%s: %w", in, err)
					}

					resized, err := adjustments.Resize(b, w, h)
					if err != nil {
						return fmt.Errorf("%s: %w", in, err)
					}

					out := output
					if out == "" {
						out = derivedName(in, outDir, fmt.Sprintf("%dx%d", w, h))
					}
					return a.save(resized, out)
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVarP(&widthExpr, "width", "W", "w", "target width expression")
	cmd.Flags().StringVarP(&heightExpr, "height", "H", "h", "target height expression")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single input only)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for outputs (default: next to each input)")
	return cmd
}

func (a *app) newCropCmd() *cobra.Command {
	var x, y, width, height int

	cmd := &cobra.Command{
		Use:   "crop IN OUT",
		Short: "Cut a rectangle out of an image (0,0 is the top-left corner)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bmp.ReadBitmap(args[0])
			if err != nil {
				return err
			}
			cropped, err := adjustments.Crop(b, x, y, width, height)
			if err != nil {
				return err
			}
			return a.save(cropped, args[1])
		},
	}

	cmd.Flags().IntVar(&x, "x", 0, "left edge")
	cmd.Flags().IntVar(&y, "y", 0, "top edge")
	cmd.Flags().IntVarP(&width, "width", "W", 0, "width of the region")
	cmd.Flags().IntVarP(&height, "height", "H", 0, "height of the region")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}

func (a *app) newFilterCmd() *cobra.Command {
	var name, method string
	var factor float64

	cmd := &cobra.Command{
		Use:   "filter IN OUT",
		Short: "Apply a color filter (invert, grayscale, luma, brightness, contrast)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bmp.ReadBitmap(args[0])
			if err != nil {
				return err
			}

			switch strings.ToLower(name) {
			case "invert":
				filters.Invert(b)
			case "grayscale":
				filters.Grayscale(b)
			case "luma":
				filters.GrayscaleLuma(b)
			case "brightness":
				if err := filters.Brightness(b, factor, method); err != nil {
					return err
				}
			case "contrast":
				filters.Contrast(b, factor)
			default:
				return fmt.Errorf("unknown filter %q", name)
			}
			return a.save(b, args[1])
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "filter name")
	cmd.Flags().Float64Var(&factor, "factor", 1, "brightness/contrast factor")
	cmd.Flags().StringVar(&method, "method", "add", "brightness method (add or multiply)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) newConvertCmd() *cobra.Command {
	var bitDepth int

	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a PNG, JPEG or GIF image to BMP",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			cfg, _, err := image.DecodeConfig(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if err := a.cfg.CheckDimensions(cfg.Width, cfg.Height); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				return err
			}

			src, format, err := image.Decode(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			b, err := bmp.FromImage(src, bitDepth)
			if err != nil {
				return err
			}
			logging.Debug("decoded %s image %s (%dx%d)", format, args[0], b.Width(), b.Height())
			return a.save(b, args[1])
		},
	}

	cmd.Flags().IntVarP(&bitDepth, "bit-depth", "b", 24, "bits per pixel (24 or 32)")
	return cmd
}

// Returns dir/<base>_<suffix>.bmp, dir defaulting to the input's directory
func derivedName(in, dir, suffix string) string {
	if dir == "" {
		dir = filepath.Dir(in)
	}
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	return filepath.Join(dir, base+"_"+suffix+".bmp")
}
