package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"live-quiz-service/internal/app"
	"live-quiz-service/internal/config"
	"live-quiz-service/internal/infra/memory"
	redisstore "live-quiz-service/internal/infra/redis"
	"live-quiz-service/internal/logging"
	transport "live-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the live session coordinator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	clock := clockwork.NewRealClock()

	var rooms app.RoomRepository
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,

			// marker writes carry their own deadlines
			ContextTimeoutEnabled: true,
		})
		defer client.Close()

		ttl := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)
		store := redisstore.NewRoomStore(client, ttl, clock, logger)
		heartbeat := config.TTLDuration(cfg.Redis.Heartbeat, ttl/2)
		g.Go(func() error {
			return store.Heartbeat(gctx, heartbeat)
		})
		rooms = store
		logger.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", ttl).Msg("room markers in redis")
	} else {
		rooms = memory.NewRoomStore(clock)
	}

	coordinator := app.NewCoordinator(rooms, logger)
	wsHandler := transport.NewWSHandler(coordinator, wsConfig(cfg), logger)
	roomsHandler := transport.NewRoomsHandler(coordinator, logger)

	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           transport.NewRouter(wsHandler, roomsHandler, cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 15 * time.Second,
	}

	g.Go(func() error {
		logger.Info().Str("port", finalPort).Msg("starting live quiz coordinator")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func wsConfig(cfg config.Config) transport.WSConfig {
	def := transport.DefaultWSConfig()
	return transport.WSConfig{
		PingInterval:   config.TTLDuration(cfg.WebSocket.PingInterval, def.PingInterval),
		PongWait:       config.TTLDuration(cfg.WebSocket.PongWait, def.PongWait),
		WriteWait:      config.TTLDuration(cfg.WebSocket.WriteWait, def.WriteWait),
		MaxMessageSize: cfg.WebSocket.MaxMessageSize,
		SendBuffer:     cfg.WebSocket.SendBuffer,
	}
}
