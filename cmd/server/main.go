package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"quinceinvitation/config"
	_ "quinceinvitation/docs"
	"quinceinvitation/internal/adapters/email"
	"quinceinvitation/internal/adapters/googleforms"
	"quinceinvitation/internal/adapters/httpx"
	"quinceinvitation/internal/adapters/metrics"
	httpdelivery "quinceinvitation/internal/delivery/http"
	"quinceinvitation/internal/delivery/http/controllers"
	"quinceinvitation/internal/domain"
	"quinceinvitation/internal/services"
)

// @title Quinceañera RSVP API
// @version 1.0
// @description RSVP intake for the quinceañera invitation page.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		config.NewLogger("development").Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	mailer, err := email.NewMailer(logger, email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(logger, mailer, email.NewTemplateRenderer())

	forwarder := googleforms.NewFormForwarder(
		&http.Client{Timeout: cfg.Form.Timeout},
		googleforms.Config{
			FormURL:   cfg.Form.URL,
			FieldID:   cfg.Form.FieldID,
			UserAgent: cfg.Form.UserAgent,
		},
	)
	observer := domain.MultiObserver{
		services.NewLoggingObserver(logger),
		m,
		services.NewAlertObserver(
			logger,
			emailService,
			httpx.NewCircuitBreaker("delivery-alerts", cfg.Email.BreakerCooldown, cfg.Email.BreakerMaxFailures),
			cfg.Email.AlertTo,
		),
	}
	rsvpService := services.NewRSVPService(logger, forwarder, observer)
	rsvpController := controllers.NewRSVPController(logger, rsvpService, m)

	mux := httpdelivery.NewRouter(rsvpController, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpdelivery.NewHandler(logger, mux, cfg.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Form.Timeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
