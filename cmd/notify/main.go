package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ethemkurtt/hotel-gateway/internal/notify"
	"github.com/ethemkurtt/hotel-gateway/internal/notify/mailer"
	"github.com/ethemkurtt/hotel-gateway/pkg/config"
	"github.com/ethemkurtt/hotel-gateway/pkg/events"
	"github.com/ethemkurtt/hotel-gateway/pkg/logger"
)

func main() {
	cfg := config.Load()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	var m mailer.Service
	if cfg.Email.DevMode {
		m = mailer.NewDevMailer()
	} else {
		m = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromAddress)
	}

	consumer := notify.NewConsumer(eventBus, m)
	if err := consumer.Start(); err != nil {
		logger.Error("Failed to subscribe", "error", err)
		os.Exit(1)
	}

	logger.Info("Notify service running", "dev_mode", cfg.Email.DevMode)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down notify service...")
}
