package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shehabweb1/MediCamp-Server/internal/config"
	httpx "github.com/shehabweb1/MediCamp-Server/internal/http"
	"github.com/shehabweb1/MediCamp-Server/internal/logger"
	"github.com/shehabweb1/MediCamp-Server/internal/repository/mongodb"
	"github.com/shehabweb1/MediCamp-Server/internal/service/camp"
	"github.com/shehabweb1/MediCamp-Server/internal/service/feedback"
	"github.com/shehabweb1/MediCamp-Server/internal/service/payment"
	"github.com/shehabweb1/MediCamp-Server/internal/service/registration"
	"github.com/shehabweb1/MediCamp-Server/internal/service/token"
	"github.com/shehabweb1/MediCamp-Server/internal/service/user"
	"github.com/shehabweb1/MediCamp-Server/internal/stripe"
	"github.com/shehabweb1/MediCamp-Server/internal/ws"
)

func main() {
	cfg := config.Load()
	log := logger.New("api", slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error("mongodb disconnect failed", "error", err)
		}
	}()

	repo := mongodb.New(client.Database(cfg.MongoDatabase))
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	var intents payment.IntentCreator
	if strings.TrimSpace(cfg.StripeSecretKey) != "" {
		stripeClient, err := stripe.New(cfg.StripeSecretKey, stripe.WithBaseURL(cfg.StripeBaseURL))
		if err != nil {
			log.Error("failed to configure payment processor", "error", err)
			os.Exit(1)
		}
		intents = stripeClient
	} else {
		log.Warn("payment processor not configured, intent creation disabled")
	}

	hub := ws.NewHub()

	tokenSvc := token.New(cfg.TokenSecret, cfg.TokenTTL)
	userSvc := user.New(repo, log)
	campSvc := camp.New(repo, repo, log)
	registrationSvc := registration.New(repo, repo, hub, log)
	paymentSvc := payment.New(repo, repo, intents, cfg.PaymentCurrency, log)
	feedbackSvc := feedback.New(repo, log)

	limiter := httpx.NewMemoryRateLimiter()
	if addr := strings.TrimSpace(cfg.RateLimitRedisAddr); addr != "" {
		redisLimiter, err := httpx.NewRedisRateLimiter(addr, cfg.RateLimitRedisPass, cfg.RateLimitRedisDB, log)
		if err != nil {
			log.Warn("redis rate limiter unavailable", "error", err)
		} else {
			limiter = redisLimiter
		}
	}

	router := httpx.NewRouter(log, tokenSvc, userSvc, campSvc, registrationSvc, paymentSvc, feedbackSvc, hub, limiter, repo.Ping)
	defer router.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errorCh := make(chan error, 1)
	go func() {
		log.Info("api server starting", "addr", cfg.Addr, "env", cfg.Environment)
		errorCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
		log.Info("api server stopped")
	case err := <-errorCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}
