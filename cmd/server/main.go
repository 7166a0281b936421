// Command zk-server starts the zero-knowledge auth server (gRPC and HTTP).
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	pb "github.com/and161185/zk-journal/gen/go/zkjournal/auth/v1"
	"github.com/and161185/zk-journal/internal/config"
	"github.com/and161185/zk-journal/internal/limiter"
	"github.com/and161185/zk-journal/internal/metrics"
	"github.com/and161185/zk-journal/internal/migrate"
	"github.com/and161185/zk-journal/internal/pake"
	"github.com/and161185/zk-journal/internal/repository"
	"github.com/and161185/zk-journal/internal/repository/memory"
	"github.com/and161185/zk-journal/internal/repository/postgres"
	grpcserver "github.com/and161185/zk-journal/internal/server/grpc"
	httpserver "github.com/and161185/zk-journal/internal/server/http"
	"github.com/and161185/zk-journal/internal/service"
	"github.com/and161185/zk-journal/internal/session"
	"github.com/and161185/zk-journal/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

const shutdownGrace = 5 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.Keygen {
		printKeys(cfg.ServerID)
		return
	}

	logger := newLogger(cfg.Dev)
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("grpcAddr", cfg.GRPCAddr),
		zap.String("httpAddr", cfg.HTTPAddr),
		zap.String("store", cfg.Store),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func newLogger(dev bool) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if dev {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func printKeys(serverID string) {
	sk, pk, seed := pake.GenerateKeys(serverID).Encoded()
	fmt.Printf("ZK_SERVER_ID=%s\nZK_SERVER_PRIVATE_KEY=%s\nZK_SERVER_PUBLIC_KEY=%s\nZK_OPRF_SEED=%s\n", serverID, sk, pk, seed)
}

// backend is the storage side of the server, selected by config.
type backend struct {
	users    repository.UserRepository
	sessions session.Store
	limiter  limiter.Limiter
	// prune is set for in-process limiters that need periodic cleanup.
	prune func() int
	ready func(ctx context.Context) error
	close func()
}

func openBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (*backend, error) {
	switch cfg.Store {
	case config.StoreMemory:
		lim := limiter.NewMemory(cfg.LimiterWindow, cfg.LimiterMaxFails, cfg.LimiterBlockFor)
		log.Warn("in-memory store: state is lost on restart")
		return &backend{
			users:    memory.NewUserRepo(),
			sessions: session.NewMemoryStore(),
			limiter:  lim,
			prune:    lim.Prune,
			close:    func() {},
		}, nil
	case config.StorePostgres:
		if cfg.Migrate {
			if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
				return nil, fmt.Errorf("migrate up: %w", err)
			}
		}
		db, err := postgres.New(ctx, cfg.DatabaseDSN, cfg.MaxConns)
		if err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
		return &backend{
			users:    postgres.NewUserRepo(db),
			sessions: session.NewPostgresStore(db.Pool),
			limiter:  limiter.NewPG(db.Pool, cfg.LimiterWindow, cfg.LimiterMaxFails, cfg.LimiterBlockFor),
			ready:    db.Ping,
			close:    db.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// newAuth assembles the protocol engine over b.
func newAuth(cfg *config.Config, b *backend, rec metrics.Recorder, log *zap.Logger) (*service.AuthServiceImpl, error) {
	keys, err := cfg.Keys()
	if err != nil {
		return nil, fmt.Errorf("opaque keys: %w", err)
	}
	ps, err := pake.NewServer(keys)
	if err != nil {
		return nil, fmt.Errorf("opaque server: %w", err)
	}
	iss, err := token.NewIssuer([]byte(cfg.JWTKey), cfg.AccessTTL, cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return service.NewAuthService(service.Deps{
		Users:    b.users,
		Sessions: b.sessions,
		PAKE:     ps,
		Tokens:   iss,
		Limiter:  b.limiter,
		Metrics:  rec,
		Log:      log,
	}, service.Options{
		SessionTTL:      cfg.SessionTTL,
		OpTimeout:       cfg.OpTimeout,
		MinResponseTime: cfg.MinResponseTime,
	}), nil
}

func newGRPCServer(cfg *config.Config, auth service.AuthService, log *zap.Logger) (*grpc.Server, error) {
	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			grpcserver.RecoverUnary(log),
			grpcserver.LoggingUnary(log),
			grpcserver.TimeoutUnary(cfg.OpTimeout),
			grpcserver.AuthUnary(auth, grpcserver.ProtectedMethods...),
		),
	}
	if cfg.TLSCert != "" {
		creds, err := credentials.NewServerTLSFromFile(cfg.TLSCert, cfg.TLSKey)
		if err != nil {
			return nil, fmt.Errorf("load TLS cert/key: %w", err)
		}
		opts = append(opts, grpc.Creds(creds))
	} else {
		log.Warn("gRPC without TLS")
	}

	s := grpc.NewServer(opts...)
	pb.RegisterAuthServer(s, grpcserver.New(auth))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	if cfg.Dev {
		reflection.Register(s)
	}
	return s, nil
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewCollector(reg)

	auth, err := newAuth(cfg, b, rec, log)
	if err != nil {
		return err
	}

	gs, err := newGRPCServer(cfg, auth, log)
	if err != nil {
		return err
	}
	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("gRPC listening", zap.String("addr", cfg.GRPCAddr), zap.Bool("tls", cfg.TLSCert != ""))
		if err := gs.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		stopGRPC(gs)
		return nil
	})

	if cfg.HTTPAddr != "" {
		proxies, err := cfg.Proxies()
		if err != nil {
			return err
		}
		rl := httpserver.NewIPRateLimiter(cfg.HTTPRatePerSec, cfg.HTTPBurst, rec)
		hs := &http.Server{
			Addr: cfg.HTTPAddr,
			Handler: httpserver.NewRouter(httpserver.Deps{
				Auth:     auth,
				Log:      log,
				Limiter:  rl,
				Gatherer: reg,
				Timeout:  cfg.OpTimeout,
				Ready:    b.ready,

				TrustedProxies: proxies,
			}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			log.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
			var err error
			if cfg.TLSCert != "" {
				err = hs.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
			} else {
				err = hs.ListenAndServe()
			}
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		})
		g.Go(func() error {
			<-gctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			return hs.Shutdown(sctx)
		})
		g.Go(func() error { return rl.Run(gctx, cfg.SweepInterval) })
	}

	g.Go(func() error {
		return session.NewSweeper(b.sessions, cfg.SweepInterval, log, rec).Run(gctx)
	})
	if b.prune != nil {
		g.Go(func() error { return every(gctx, cfg.SweepInterval, func() { b.prune() }) })
	}

	return g.Wait()
}

func stopGRPC(s *grpc.Server) {
	done := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownGrace):
		s.Stop()
	}
}

// every calls fn each interval until ctx is done.
func every(ctx context.Context, interval time.Duration, fn func()) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			fn()
		}
	}
}
