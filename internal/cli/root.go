// Package cli implements the refctl command tree.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rawbytedev/cref"
	"github.com/rawbytedev/cref/internal/config"
	"github.com/rawbytedev/cref/internal/logging"
)

// RootOptions holds global flags and the resolved configuration shared by
// all commands.
type RootOptions struct {
	Verbose    bool
	Format     string
	ConfigPath string

	Config config.Config
	Log    zerolog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{config.FormatText, config.FormatJSON, config.FormatYAML}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "refctl",
		Short: "refctl - inspect typed pointers over raw memory",
		Long: `refctl exposes the cref type system from the command line: platform
sizes, built-in types, type string resolution and the 64-bit integer and
C string codecs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.FormatText, "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a TOML config file")

	cmd.AddCommand(NewSizeofCommand(opts))
	cmd.AddCommand(NewTypesCommand(opts))
	cmd.AddCommand(NewCoerceCommand(opts))
	cmd.AddCommand(NewInt64Command(opts))
	cmd.AddCommand(NewCStringCommand(opts))
	cmd.AddCommand(NewDocsCommand(opts))
	cmd.AddCommand(NewProfileCommand(opts))

	return cmd
}

// resolve loads the config file, lets explicit flags win over it and wires
// the loggers.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "load config", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("format") || o.ConfigPath == "" {
		cfg.Format = o.Format
	}
	if !isValidFormat(cfg.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", cfg.Format, ValidFormats))
	}
	o.Format = cfg.Format
	o.Config = cfg
	cfg.Apply()

	logCfg := logging.DefaultConfig(logging.ProfileCLI)
	if lvl, ok := logging.ParseLevel(cfg.Log.Level); ok {
		logCfg.Level = lvl
	}
	logCfg.NoColor = cfg.Log.NoColor
	logCfg.Timestamp = cfg.Log.Timestamp
	logCfg.Out = cmd.ErrOrStderr()
	logging.ApplyEnv(&logCfg)
	if o.Verbose {
		logCfg.Level = zerolog.DebugLevel
	}
	o.Log = logging.Build("refctl", logCfg)
	cref.SetLogger(logging.Build("cref", logCfg))
	o.Log.Debug().Str("format", cfg.Format).Str("config", o.ConfigPath).Msg("resolved options")
	return nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
