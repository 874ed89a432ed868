package cmd

import (
	"context"

	"github.com/leadchoose/waitlistd/api"
	"github.com/leadchoose/waitlistd/waitlist"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCommand = cobra.Command{
	Use:   "serve",
	Short: "starts the http server",
	Long:  `Starts a http server and serves the service`,
	Run: func(cmd *cobra.Command, args []string) {
		//this is our composite root - might wanna shift that somewhere else later

		//setup datastore
		dataStore := mustResolveUsableDataStore()

		//setup mailer
		mailer := mustResolveMailer()

		//setup business service
		service := resolveWaitlistService(dataStore, mailer)

		//expired pending entries get swept while the server runs
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sweeper := waitlist.NewSweeper(
			TopLevelLogger.Named("sweeper"),
			service,
			LoadedConfig.Behaviour.SweepInterval,
		)
		sweeper.Start(ctx)

		server, err := api.NewServer(
			LoadedConfig,
			TopLevelLogger.Named("server"),
			service,
			mailer,
		)
		if err != nil {
			TopLevelLogger.Fatal("Failed to create server", zap.Error(err))
		}
		if err := server.Start(); err != nil {
			TopLevelLogger.Fatal("Server stopped with error", zap.Error(err))
		}
		TopLevelLogger.Info("Shutdown complete")
	},
}
