package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/spf13/pflag"

	"im-client/internal/auth"
	"im-client/internal/config"
	"im-client/internal/handlers/bridge"
	"im-client/internal/services"
	"im-client/internal/session"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to the config file (default ./config/config.yaml)")
	pflag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法加载配置: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)
	logger.Info("配置加载成功", slog.String("app", cfg.AppName), slog.String("version", cfg.AppVersion),
		slog.String("backend", cfg.Backend.Mode), slog.String("responder", cfg.Responder.Mode))

	if err := run(cfg, logger); err != nil {
		logger.Error("im-client stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx := context.Background()
	deps := &dependencies{cfg: cfg, logger: logger}
	defer deps.Close()

	// 2. 协作方、自动回复、凭证存储与事件
	backend, err := deps.Backend(ctx)
	if err != nil {
		return err
	}
	responder, err := deps.Responder(backend)
	if err != nil {
		return err
	}
	store, err := deps.CredentialStore(ctx)
	if err != nil {
		return err
	}
	events, err := deps.Events()
	if err != nil {
		return err
	}

	// 3. 会话服务，尝试恢复上一次登录
	sessions := services.NewSessionService(backend, responder, store,
		session.OptionsFromConfig(cfg.Session, logger, events), logger)
	restoreSession(ctx, sessions, logger)

	// 4. 启动桥接服务并实现优雅关闭
	corsOptions := []handlers.CORSOption{
		handlers.AllowedOrigins(cfg.Bridge.CORS.AllowedOrigins),
		handlers.AllowedMethods(cfg.Bridge.CORS.AllowedMethods),
		handlers.AllowedHeaders(cfg.Bridge.CORS.AllowedHeaders),
		handlers.ExposedHeaders(cfg.Bridge.CORS.ExposedHeaders),
		handlers.MaxAge(cfg.Bridge.CORS.MaxAge),
	}
	if cfg.Bridge.CORS.AllowCredentials {
		corsOptions = append(corsOptions, handlers.AllowCredentials())
	}
	router := bridge.NewRouter(sessions, logger)
	handler := handlers.CORS(corsOptions...)(handlers.LoggingHandler(os.Stdout, router))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Bridge.Host, cfg.Bridge.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Bridge.ReadTimeout,
		WriteTimeout: cfg.Bridge.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("bridge listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("bridge server: %w", err)
		}
	case sig := <-quit:
		logger.Info("收到关闭信号，正在关闭桥接服务", slog.String("signal", sig.String()))
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("bridge shutdown: %w", err)
	}
	logger.Info("桥接服务已关闭")
	return nil
}

func restoreSession(ctx context.Context, sessions services.SessionService, logger *slog.Logger) {
	ctrl, err := sessions.Restore(ctx)
	switch {
	case err == nil:
		identity, _ := ctrl.Session().Identity()
		logger.Info("restored previous session", slog.String("user", identity.DisplayName))
	case errors.Is(err, auth.ErrNoCredentials):
		logger.Info("no saved session, waiting for login")
	case errors.Is(err, auth.ErrTokenExpired):
		logger.Info("saved session has expired, waiting for login")
	default:
		logger.Warn("restore session failed", slog.Any("error", err))
	}
}
