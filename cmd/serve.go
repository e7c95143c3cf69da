package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"AdminBackend/config"
	"AdminBackend/logger"
	"AdminBackend/routers"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  serveCommand,
	}
	serveCmd.Flags().Bool("migrate", false, "Run migrations before serving")
	return serveCmd
}

func serveCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.SetupDatabaseConnection(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			logger.Log.Warn("close database", zap.Error(err))
		}
	}()

	if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
		if err := config.Migrate(db); err != nil {
			return err
		}
	}

	rdb, err := config.SetupRedisConnection(ctx, cfg)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	tokens, err := newTokenManager(cfg.Auth)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: routers.SetupRouters(db, rdb, tokens, cfg),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Log.Info("listening", zap.String("addr", cfg.Server.Addr), zap.String("env", cfg.Server.Env))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
