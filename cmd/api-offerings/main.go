package main

import (
	"context"
	"flag"
	"os"

	"github.com/diwise/api-offerings/internal/pkg/application/config"
	"github.com/diwise/api-offerings/internal/pkg/application/services/offerings"
	"github.com/diwise/api-offerings/internal/pkg/infrastructure/logfile"
	"github.com/diwise/api-offerings/internal/pkg/presentation"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const serviceName string = "api-offerings"

func loadConfiguration(ctx context.Context, path string) *config.Config {
	log := logging.GetFromContext(ctx)

	if path == "" {
		return config.Default()
	}

	configFile, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to open the mapping configuration file %s", path)
	}
	defer configFile.Close()

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to load the mapping configuration from %s", path)
	}

	return cfg
}

var configFileName string
var templateFileName string
var logFileName string

func main() {
	serviceVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	flag.StringVar(&configFileName, "config", "", "An optional YAML file with mapping configuration")
	flag.StringVar(&templateFileName, "template", "", "The JMESPath template used to project offerings (overrides the configuration)")
	flag.StringVar(&logFileName, "logfile", "", "The rotating log file to write to (overrides the configuration)")
	flag.Parse()

	cfg := loadConfiguration(ctx, configFileName)

	if templateFileName != "" {
		cfg.Template = templateFileName
	}
	if logFileName != "" {
		cfg.Logging.File = logFileName
	}

	logWriter, err := logfile.New(cfg.Logging.File, cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to create log file")
	}
	defer logWriter.Close()

	log = logfile.Attach(log, os.Stdout, logWriter)
	ctx = logging.NewContextWithLogger(ctx, log)

	log.Info().Msgf("Starting up %s ...", serviceName)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc, err := offerings.NewOfferingService(ctx, cfg, registry)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create offering service")
	}

	port := env.GetVariableOrDefault(log, "SERVICE_PORT", "4020")

	api := presentation.NewAPI(ctx, chi.NewRouter(), svc, registry)
	err = api.Start(port)
	if err != nil {
		log.Fatal().Msgf("failed to start router: %s", err.Error())
	}
}
