package main

import (
	"errors"
	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"
	"net/http"
	"program-portal-go/internal/programs"
	"strconv"
)

func main() {
	log.Println("starting program portal server")

	cfg, err := ReadConfig()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}

	if err := configureLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("configuring logging: %v", err)
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		log.Fatalf("converting port to integer: %v", err)
	}

	app, err := newRelicApp(cfg)
	if err != nil {
		log.Fatalf("creating new relic application: %v", err)
	}

	opts := []Option{
		WithCachePolicy(cfg.CachePolicy()),
		WithCORSOrigins(cfg.Origins()...),
		WithNewRelic(app),
	}

	// A missing store configuration does not stop the process. Every API
	// request answers with a configuration error until it is fixed.
	gateway, closeGateway, err := openGateway(cfg)
	defer closeGateway()
	if err != nil {
		log.Errorf("record store unavailable: %v", err)
		opts = append(opts, WithConfigError(err))
	} else {
		log.WithField("store", cfg.Store).Info("record store ready")
		opts = append(opts, WithPrograms(programs.NewService(gateway, cfg.Tables())))
	}

	server := NewServer(port, opts...)

	if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func newRelicApp(cfg *Config) (*newrelic.Application, error) {
	if cfg.NewRelicLicenseKey == "" {
		return nil, nil
	}

	return newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.NewRelicAppName),
		newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
}
