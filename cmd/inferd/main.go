// Command inferd starts the inference server: a hand-rolled HTTP/1.1
// socket server fronting an OpenAI-compatible chat-completions route.
//
// Usage:
//
//	go run ./cmd/inferd --port 8080 --workers 4 --model-dir ./models
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/aleutian-infer-core/pkg/config"
	"github.com/AleutianAI/aleutian-infer-core/pkg/generator"
	"github.com/AleutianAI/aleutian-infer-core/pkg/logging"
	"github.com/AleutianAI/aleutian-infer-core/pkg/modeldir"
	"github.com/AleutianAI/aleutian-infer-core/services/httpserver"
	"github.com/AleutianAI/aleutian-infer-core/services/inference"
	"github.com/AleutianAI/aleutian-infer-core/services/observability"
	"github.com/AleutianAI/aleutian-infer-core/services/router"
)

var (
	cfgFile string
	cfg     = config.Default()
	debug   bool
	warn    bool
	infoLvl bool

	rootCmd = &cobra.Command{
		Use:   "inferd",
		Short: "An OpenAI-compatible inference server core",
		Long: `inferd runs a hand-rolled HTTP/1.1 socket server with a fixed
worker pool, serving /healthz and /v1/chat/completions.`,
		RunE: runServe,
	}
)

func init() {
	flags := rootCmd.Flags()
	flags.IntVar(&cfg.Port, "port", cfg.Port, "TCP port to listen on")
	flags.IntVar(&cfg.ReadTimeoutMillis, "read-timeout-millis", cfg.ReadTimeoutMillis, "per-socket read timeout")
	flags.IntVar(&cfg.WriteTimeoutMillis, "write-timeout-millis", cfg.WriteTimeoutMillis, "per-socket write timeout")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of worker goroutines")
	flags.StringVar(&cfg.ModelDir, "model-dir", cfg.ModelDir, "directory containing the model file")
	flags.StringVar(&cfgFile, "config", "", "optional YAML config file overlaying these flags")
	flags.BoolVar(&infoLvl, "info", true, "log at info level")
	flags.BoolVar(&warn, "warn", false, "log at warn level")
	flags.BoolVar(&debug, "debug", false, "log at debug level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := config.LoadYAML(cfgFile, &cfg); err != nil {
		return err
	}

	log := logging.New(resolveLevel(), "inferd")

	modelName, err := modeldir.Discover(cfg.ModelDir)
	if err != nil {
		log.Warn("model discovery failed, using directory name", "error", err)
		modelName = cfg.ModelDir
	}

	reg := prometheus.NewRegistry()
	metrics := observability.New(reg)
	metrics.ActiveWorkers.Set(float64(cfg.Workers))

	rt := router.New()
	inference.Register(rt, generator.NewEcho(modelName), modelName)
	rt.Handle(`/metrics`, observability.Handler(reg))

	srv := httpserver.New(httpserver.Config{
		Port:               cfg.Port,
		ReadTimeoutMillis:  cfg.ReadTimeoutMillis,
		WriteTimeoutMillis: cfg.WriteTimeoutMillis,
		Workers:            cfg.Workers,
		Metrics:            metrics,
	}, rt, log)

	if err := srv.Start(); err != nil {
		return err
	}
	log.Info("server started", "port", srv.Port(), "model", modelName, "workers", cfg.Workers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		log.Info("shutting down", "signal", sig.String())
		srv.Stop()
	}()

	srv.Wait()
	return nil
}

func resolveLevel() logging.Level {
	switch {
	case debug:
		return logging.LevelDebug
	case warn:
		return logging.LevelWarn
	default:
		return logging.LevelInfo
	}
}
