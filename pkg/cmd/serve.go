package cmd

import (
	"context"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c9s/bbands/pkg/cmd/cmdutil"
	"github.com/c9s/bbands/pkg/datasource"
	"github.com/c9s/bbands/pkg/server"
)

func init() {
	ServeCmd.Flags().String("bind", "", "the address the http server binds to, defaults to the config server.bind")
	ServeCmd.Flags().String("data", "", "the bar file served by /api/bollinger, defaults to the config server.data")
	RootCmd.AddCommand(ServeCmd)
}

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve the bollinger bands api for a chart",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg := *userConfig

		bind, err := cmd.Flags().GetString("bind")
		if err != nil {
			return err
		}
		if len(bind) > 0 {
			cfg.Server.Bind = bind
		}

		dataFile, err := cmd.Flags().GetString("data")
		if err != nil {
			return err
		}
		if len(dataFile) > 0 {
			cfg.Server.DataFile = dataFile
		}

		log.Infof("serving bars from %s", cfg.Server.DataFile)

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		go func() {
			cmdutil.WaitForSignal(ctx, syscall.SIGINT, syscall.SIGTERM)
			cancel()
		}()

		srv := server.New(&cfg, datasource.NewFileLoader(cfg.Server.DataFile))
		return srv.Run(ctx, cfg.Server.Bind)
	},
}
