package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/equinor/radix-training-console/api/controllers"
	jobControllers "github.com/equinor/radix-training-console/api/v1/controllers/jobs"
	mpijobControllers "github.com/equinor/radix-training-console/api/v1/controllers/mpijobs"
	jobsApi "github.com/equinor/radix-training-console/api/v1/jobs"
	mpijobsApi "github.com/equinor/radix-training-console/api/v1/mpijobs"
	"github.com/equinor/radix-training-console/internal/config"
	"github.com/equinor/radix-training-console/internal/defaults"
	"github.com/equinor/radix-training-console/internal/httpclient"
	"github.com/equinor/radix-training-console/internal/kubeclient"
	"github.com/equinor/radix-training-console/internal/logging"
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	"github.com/equinor/radix-training-console/pkg/gateway"
	"github.com/equinor/radix-training-console/pkg/gateway/backend"
	"github.com/equinor/radix-training-console/pkg/gateway/kube"
	"github.com/equinor/radix-training-console/pkg/jobstore"
	"github.com/equinor/radix-training-console/pkg/notifications"
	"github.com/equinor/radix-training-console/pkg/watcher"
	"github.com/equinor/radix-training-console/router"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogPretty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}

	fs := initializeFlagSet()
	port := fs.StringP("port", "p", cfg.Port, "Port where API will be served")
	parseFlagsFromArgs(fs)
	cfg.Port = *port

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	draft, err := getDraft(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load job configuration defaults")
	}

	store := jobstore.New()
	notifier := notifications.NewWebhookNotifier(cfg.NotificationWebhook, httpclient.Default())
	log.Info().Msgf("Created notifier: %s", notifier.String())

	jobGateway, jobWatcher, handlerOptions, err := getGateway(ctx, cfg, store, notifier)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up job gateway")
	}
	defer jobWatcher.Stop()

	runApiServer(ctx, cfg, getControllers(draft, jobGateway, store, handlerOptions...)...)
}

func runApiServer(ctx context.Context, cfg *config.Config, controllers ...controllers.Controller) {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router.NewServer(cfg, controllers...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errsChan := make(chan error, 1)
	go func() {
		log.Info().Msgf("Training console API is serving on port %s", cfg.Port)
		errsChan <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down training console API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Failed to shut down training console API")
		}
	case err := <-errsChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Training console API server crashed")
		}
	}
}

func getDraft(cfg *config.Config) (modelsv1.JobConfigDraft, error) {
	if cfg.DraftDefaultsFile == "" {
		return defaults.NewDraft(nil)
	}
	overrides, err := defaults.LoadFile(cfg.DraftDefaultsFile)
	if err != nil {
		return modelsv1.JobConfigDraft{}, err
	}
	log.Info().Msgf("Loaded job configuration defaults from %s", cfg.DraftDefaultsFile)
	return defaults.NewDraft(overrides)
}

func getGateway(ctx context.Context, cfg *config.Config, store *jobstore.Store, notifier notifications.Notifier) (gateway.Gateway, watcher.Watcher, []mpijobsApi.HandlerOption, error) {
	switch cfg.Gateway {
	case config.GatewayBackend:
		client := httpclient.New(cfg.BackendRetryMax, log.Logger.With().Str("pkg", "backend-gateway").Logger())
		backendGateway, err := backend.New(cfg.BackendURL, client)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info().Msgf("Submitting jobs to backend %s", cfg.BackendURL)
		return backendGateway, watcher.NewNullWatcher(), []mpijobsApi.HandlerOption{mpijobsApi.WithSubmissionStore(store)}, nil
	default:
		client, err := kubeclient.NewDynamicClient(cfg.Kubeconfig)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info().Msgf("Submitting MPIJobs to the cluster, namespace %q", cfg.Namespace)
		mpiJobWatcher, err := watcher.NewMPIJobWatcher(ctx, client, cfg.Namespace, store, notifier)
		if err != nil {
			return nil, nil, nil, err
		}
		return kube.New(client, cfg.Namespace), mpiJobWatcher, nil, nil
	}
}

func getControllers(draft modelsv1.JobConfigDraft, jobGateway gateway.Gateway, store *jobstore.Store, options ...mpijobsApi.HandlerOption) []controllers.Controller {
	return []controllers.Controller{
		mpijobControllers.New(mpijobsApi.New(draft, jobGateway, options...)),
		jobControllers.New(jobsApi.New(store)),
	}
}

func initializeFlagSet() *pflag.FlagSet {
	// Flag domain.
	fs := pflag.NewFlagSet("default", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, "DESCRIPTION\n")
		fmt.Fprint(os.Stderr, "Training console API server. Validates, renders and submits MPIJobs and lists training jobs.\n")
		fmt.Fprint(os.Stderr, "\n")
		fmt.Fprint(os.Stderr, "FLAGS\n")
		fs.PrintDefaults()
	}
	return fs
}

func parseFlagsFromArgs(fs *pflag.FlagSet) {
	err := fs.Parse(os.Args[1:])
	switch {
	case errors.Is(err, pflag.ErrHelp):
		os.Exit(0)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %s\n\n", err.Error())
		fs.Usage()
		os.Exit(2)
	}
}
