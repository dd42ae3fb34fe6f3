// bmpkit loads, generates, resizes and saves uncompressed 24/32-bit bitmaps.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/anas-shakeel/bmpkit/internal/bmp"
	"github.com/anas-shakeel/bmpkit/internal/config"
	"github.com/anas-shakeel/bmpkit/internal/logging"
)

const appVersion = "v0.3.0"

// app carries state shared by the subcommands
type app struct {
	configFile string
	logLevel   string
	force      bool
	cfg        *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Error("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "bmpkit",
		Short:         "Inspect, generate and resize uncompressed BMP images",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{ConfigFile: a.configFile, LogLevel: a.logLevel})
			if err != nil {
				return err
			}
			logging.SetLevelFromString(cfg.Logging.Level)
			a.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVarP(&a.force, "force", "f", false, "overwrite existing output files")

	root.AddCommand(
		a.newInfoCmd(),
		a.newShowCmd(),
		a.newGenerateCmd(),
		a.newResizeCmd(),
		a.newCropCmd(),
		a.newFilterCmd(),
		a.newConvertCmd(),
	)
	return root
}

// Writes b to path, refusing to replace an existing file unless --force is set
func (a *app) save(b *bmp.BitmapImage, path string) error {
	if !a.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	if err := b.Save(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	logging.Info("wrote %s (%dx%d, %d-bit)", path, b.Width(), b.Height(), b.BitDepth())
	return nil
}
