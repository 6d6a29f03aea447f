package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/pixkit/pkg/clientip"
	"github.com/dmitrymomot/pixkit/pkg/config"
	"github.com/dmitrymomot/pixkit/pkg/environment"
	"github.com/dmitrymomot/pixkit/pkg/httpserver"
	"github.com/dmitrymomot/pixkit/pkg/logger"
	"github.com/dmitrymomot/pixkit/pkg/pixhttp"
	"github.com/dmitrymomot/pixkit/pkg/redis"
	"github.com/dmitrymomot/pixkit/pkg/requestid"
)

const serviceName = "pix"

func newServeCommand() *cobra.Command {
	var envFiles []string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve payment pages, QR images and the JSON API over HTTP",
		Long: `Serve the HTTP demo surface.

Configuration comes from the environment (HTTP_*, PIX_*, RENDER_*,
RATE_LIMIT_*, REDIS_*, APP_ENV, LOG_*), optionally loaded from .env files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(envFiles) > 0 {
				if err := config.LoadEnv(envFiles...); err != nil {
					return err
				}
			}
			return serve(cmd.Context())
		},
	}
	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "load variables from these .env files")
	return cmd
}

func serve(ctx context.Context) error {
	var (
		logCfg   logger.Config
		httpCfg  httpserver.Config
		pixCfg   pixhttp.Config
		redisCfg redis.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&logCfg) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&pixCfg) },
		func() error { return config.Load(&redisCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	logOpts, err := logger.FromConfig(logCfg, serviceName)
	if err != nil {
		return err
	}
	log := logger.New(append(logOpts, logger.WithContextExtractors(
		requestid.LoggerExtractor(),
		clientip.LoggerExtractor(),
	))...)
	logger.SetAsDefault(log)

	opts := []pixhttp.Option{
		pixhttp.WithLogger(log),
		pixhttp.WithEnvironment(environment.Parse(logCfg.Env)),
	}
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		opts = append(opts,
			pixhttp.WithImageStore(redis.NewImageStore(client, redisCfg.KeyPrefix), redisCfg.ImageTTL),
			pixhttp.WithReadinessCheck("redis", redis.Healthcheck(client)),
		)
		log.Info("redis image cache enabled", logger.Component("redis"))
	}

	handler, err := pixhttp.NewHandler(pixCfg, opts...)
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("payment pages ready", slog.String("beneficiary", pixCfg.Beneficiary))
		}),
	)
	return srv.Run(ctx, handler)
}
