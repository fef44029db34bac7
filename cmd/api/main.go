package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "loansaarthi-backend/internal/adapter/http"
	"loansaarthi-backend/internal/adapter/repository/mysql"
	"loansaarthi-backend/internal/adapter/repository/redisstore"
	"loansaarthi-backend/internal/config"
	"loansaarthi-backend/internal/infrastructure/cache"
	"loansaarthi-backend/internal/infrastructure/db"
	"loansaarthi-backend/internal/logging"
	ucCustomer "loansaarthi-backend/internal/usecase/customer"
	ucDocument "loansaarthi-backend/internal/usecase/document"
	ucInquiry "loansaarthi-backend/internal/usecase/inquiry"
	ucLoan "loansaarthi-backend/internal/usecase/loan"
	ucOTP "loansaarthi-backend/internal/usecase/otp"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), cfg.LogLevel)
	if err != nil {
		log.Error("mysql connect failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		log.Error("schema migration failed", slog.Any("err", err))
		os.Exit(1)
	}
	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Error("redis connect failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer rdb.Close()

	// repositories + unit of work
	loans := mysql.NewLoanRepository(gdb)
	docs := mysql.NewDocumentRepository(gdb)
	customers := mysql.NewCustomerRepository(gdb)
	inquiries := mysql.NewInquiryRepository(gdb)
	tx := mysql.NewGormUoW(gdb)
	// verify marks mobiles here; /apply spends the mark
	otpStore := redisstore.NewOTPStore(rdb, cfg.OTPTTL())

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("err", v.Error.Error()))
				log.LogAttrs(c.Request().Context(), slog.LevelError, "request", attrs...)
				return nil
			}
			log.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	}))

	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Health:    httpadp.NewHandler(),
		Loans:     httpadp.NewLoanHandler(ucLoan.NewUsecase(loans, customers, tx)),
		Documents: httpadp.NewDocumentHandler(ucDocument.NewUsecase(docs, loans, customers, tx)),
		Customers: httpadp.NewCustomerHandler(ucCustomer.NewUsecase(customers, tx)),
		OTP:       httpadp.NewOTPHandler(ucOTP.NewUsecase(otpStore, log, cfg.OTPEcho)),
		Inquiries: httpadp.NewInquiryHandler(ucInquiry.NewUsecase(inquiries, otpStore, log)),
	}, httpadp.RouterConfig{
		JWTSecret:      []byte(cfg.JWTSecret),
		Redis:          rdb,
		IdempotencyTTL: cfg.IdempotencyTTL(),
		Logger:         log,
	})

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", addr))
		errCh <- e.Start(addr)
	}()

	select {
	case <-ctx.Done():
		log.Info("received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped unexpectedly", slog.Any("err", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", slog.Any("err", err))
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
