package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"okinoko_council/explorer"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read api over the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := a.openNode()
			if err != nil {
				return err
			}
			defer n.Close()

			var cache explorer.Cache
			if addr := a.v.GetString(keyRedisAddr); addr != "" {
				rdb, err := explorer.OpenRedis(addr)
				if err != nil {
					return err
				}
				defer rdb.Close()
				cache = explorer.NewRedisCache(rdb, a.v.GetDuration(keyCacheTTL))
			}

			gin.SetMode(gin.ReleaseMode)
			srv := &http.Server{
				Addr:              a.v.GetString(keyListen),
				Handler:           explorer.New(explorer.NewState(n.ledger), cache, n.metrics.Registry, a.log),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			errc := make(chan error, 1)
			go func() {
				a.log.WithField("addr", srv.Addr).Info("explorer listening")
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String(flagListen, ":8080", "explorer listen address")
	cmd.Flags().String(flagRedisAddr, "", "redis address or url for the response cache")
	cmd.Flags().Duration(flagCacheTTL, 30*time.Second, "how long cached responses live")
	return cmd
}
