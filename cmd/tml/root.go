package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tml/pkg/config"
	"tml/pkg/logging"
)

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg      *config.Config
	logger   *zap.Logger
	closeLog func() error
}

// run executes the command line and releases the log sinks, also when the
// command fails.
func run(args []string, in io.Reader, out, errOut io.Writer) error {
	a := newApp()
	cmd := a.rootCmd()
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	if cerr := a.shutdown(); err == nil {
		err = cerr
	}
	return err
}

func newApp() *app {
	a := &app{
		v:        viper.New(),
		logger:   zap.NewNop(),
		closeLog: func() error { return nil },
	}
	config.SetDefaults(a.v)
	return a
}

// shutdown flushes the logger and closes its file sink. Console sync
// errors are ignored.
func (a *app) shutdown() error {
	_ = a.logger.Sync()
	return a.closeLog()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tml",
		Short:         "Lay out tml markup and export the computed boxes",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initializeConfig(); err != nil {
				return err
			}
			cfg, err := config.NewConfigFromViper(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger, a.closeLog = logging.New(cfg.Logger, zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())))
			a.logger.Debug("configuration loaded", zap.String("file", a.v.ConfigFileUsed()))
			return nil
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./tml.yaml)")
	flags.Int("width", 0, "viewport width (default from config)")
	flags.Int("height", 0, "viewport height (default from config)")
	flags.String("block-width", "", "block width formula: legacy or right-margin")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	a.bindFlag(root, "viewport.width", "width")
	a.bindFlag(root, "viewport.height", "height")
	a.bindFlag(root, "layout.block_width", "block-width")
	a.bindFlag(root, "logger.level", "log-level")

	root.AddCommand(newRenderCmd(a), newTreeCmd(a), newVersionCmd())
	return root
}

// bindFlag binds a persistent flag to a config key. Flags only override
// the config when set on the command line.
func (a *app) bindFlag(cmd *cobra.Command, key, flag string) {
	if err := a.v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// initializeConfig reads in the config file and TML_ environment variables.
func (a *app) initializeConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("tml")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("TML")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}
