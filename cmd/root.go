package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mogaika/gbe_scene_converter/config"
	"github.com/mogaika/gbe_scene_converter/converter"
	"github.com/mogaika/gbe_scene_converter/status"
	"github.com/mogaika/gbe_scene_converter/vfs"
)

var (
	configPath string
	logLevel   string

	// replaced in tests
	newStorage = vfs.NewOSStorage
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	rootCmd.AddCommand(convertCmd, treeCmd, queryCmd, dumpCmd, exportGltfCmd, serveCmd, initConfigCmd)
}

var rootCmd = &cobra.Command{
	Use:           "scene_converter",
	Short:         "Convert scene graphs to gbe scene documents and back",
	SilenceUsage:  true,
	SilenceErrors: true,
}

type app struct {
	cfg     *config.Config
	storage *vfs.BillyStorage
	log     *status.Logger
	conv    *converter.Converter

	configCreated bool
}

func newApp() (*app, error) {
	storage := newStorage()

	level := logLevel
	if level == "" {
		level = config.Default().Log.Level
	}
	boot, err := status.NewZapLogger(level, false)
	if err != nil {
		return nil, err
	}

	created := !storage.Exists(configPath)
	cfg, err := config.LoadOrCreate(storage, configPath, status.NewLogger(boot))
	if err != nil {
		return nil, err
	}

	if logLevel == "" {
		level = cfg.Log.Level
	}
	l, err := status.NewZapLogger(level, cfg.Log.Development)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(l)

	log := status.NewLogger(l)
	return &app{
		cfg:     cfg,
		storage: storage,
		log:     log,
		conv:    converter.New(storage, log, cfg.Catalog()),

		configCreated: created,
	}, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
