package cmd

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/c9s/bbands/pkg/config"
)

var RootCmd = &cobra.Command{
	Use:   "bbands",
	Short: "bollinger bands calculator",
	Long:  "compute bollinger bands over local bar files and serve them to a chart",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dotenvFile := viper.GetString("dotenv")
		if _, err := os.Stat(dotenvFile); err == nil {
			if err := godotenv.Load(dotenvFile); err != nil {
				return errors.Wrapf(err, "error loading dotenv file %s", dotenvFile)
			}
		}

		cfg, err := loadConfig(viper.GetString("config"))
		if err != nil {
			return err
		}
		userConfig = cfg

		return setupLogging(cfg.Logging, viper.GetBool("debug"), viper.GetString("log-file"))
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// userConfig is loaded before any sub-command runs.
var userConfig *config.Config

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "debug flag")
	RootCmd.PersistentFlags().String("config", "", "config file, defaults to "+config.DefaultConfigFile+" when it exists")
	RootCmd.PersistentFlags().String("dotenv", ".env.local", "the dotenv file you want to load")
	RootCmd.PersistentFlags().String("log-file", "", "write json logs into this rotating file")
}

// loadConfig loads the given file, or the default config file when it exists.
func loadConfig(configFile string) (*config.Config, error) {
	if len(configFile) == 0 {
		if _, err := os.Stat(config.DefaultConfigFile); err != nil {
			return config.Default(), nil
		}
		configFile = config.DefaultConfigFile
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load config file %s", configFile)
	}

	log.Infof("loaded config from %s", configFile)
	return cfg, nil
}

func setupLogging(settings config.LoggingConfig, debug bool, logFile string) error {
	logger := log.StandardLogger()

	level, err := log.ParseLevel(settings.Level)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	if debug {
		logger.SetLevel(log.DebugLevel)
	}

	if len(logFile) == 0 {
		logFile = settings.File
	}

	if len(logFile) > 0 {
		writer := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100, // megabytes
			MaxBackups: 7,
			MaxAge:     30, // days
		}

		logger.AddHook(
			lfshook.NewHook(
				lfshook.WriterMap{
					log.DebugLevel: writer,
					log.InfoLevel:  writer,
					log.WarnLevel:  writer,
					log.ErrorLevel: writer,
					log.FatalLevel: writer,
				},
				&log.JSONFormatter{},
			),
		)
	}

	return nil
}

func Execute() {
	viper.SetEnvPrefix("BBANDS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Enable environment variable binding, the env vars are not overloaded yet.
	viper.AutomaticEnv()

	// Once the flags are defined, we can bind config keys with flags.
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		log.WithError(err).Errorf("failed to bind persistent flags. please check the flag settings.")
	}

	if err := viper.BindPFlags(RootCmd.Flags()); err != nil {
		log.WithError(err).Errorf("failed to bind local flags. please check the flag settings.")
	}

	log.SetFormatter(&prefixed.TextFormatter{})

	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
