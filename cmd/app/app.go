package main

import (
	"fmt"
	"os"

	"github.com/DRSN-tech/product-registry/internal/app"
	config "github.com/DRSN-tech/product-registry/internal/cfg"
	"github.com/DRSN-tech/product-registry/pkg/logger"
	"github.com/spf13/cobra"
)

//	@title			Product Registry API
//	@version		1.0
//	@description	Реестр продуктов с единственным администратором
//	@host			localhost:8080
//	@BasePath		/api/v1
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "registry",
		Short:         "Product registry ledger service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP and gRPC servers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("log-level") {
				if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
					logLevel = lvl
				}
			}

			log, err := logger.NewZapLogger(logLevel)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			defer log.Sync()

			cfg, err := config.Load(log)
			if err != nil {
				log.Errorf(err, "failed to load config")
				return err
			}

			application, err := app.NewApp(cfg, log)
			if err != nil {
				log.Errorf(err, "failed to initialize app")
				return err
			}

			return application.Run()
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	return cmd
}
