package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	credlink "github.com/goliatone/go-credlink"
	"github.com/goliatone/go-credlink/internal/config"
	"github.com/goliatone/go-credlink/pkg/document"
	docgofpdf "github.com/goliatone/go-credlink/pkg/document/gofpdf"
	"github.com/goliatone/go-credlink/pkg/mail"
	"github.com/goliatone/go-credlink/pkg/mail/resend"
	"github.com/goliatone/go-credlink/pkg/server"
)

const shutdownGrace = 5 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sender, err := resend.New(cfg.ResendAPIKey, cfg.EmailFrom)
	if err != nil {
		log.Fatalf("sender: %v", err)
	}

	dispatcher, err := mail.NewDispatcher(sender,
		mail.WithBrand(cfg.Brand),
		mail.WithInviteReplyTo(cfg.ReplyTo),
	)
	if err != nil {
		log.Fatalf("dispatcher: %v", err)
	}

	generator, err := document.New(docgofpdf.New(), document.WithBrand(cfg.Brand))
	if err != nil {
		log.Fatalf("generator: %v", err)
	}

	service, err := credlink.NewService(generator, dispatcher, cfg.PDFPassword)
	if err != nil {
		log.Fatalf("service: %v", err)
	}

	srv, err := server.New(context.Background(), service, server.WithLogger(log))
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Handler(),
	}

	log.Infof("listening on %s (base url %s)", cfg.HTTPAddr, cfg.BaseURL)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		log.Fatalf("listen: %v", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warnf("shutdown: %v", err)
	}
}
