package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"chaos-service/pkg/api"
	"chaos-service/pkg/cluster"
	"chaos-service/pkg/command"
	"chaos-service/pkg/environment"
	"chaos-service/pkg/log"
	"chaos-service/pkg/orchestrator"
	"chaos-service/pkg/scenarios"
	"chaos-service/pkg/scheduler"
)

func init() {
	// Log as text with full timestamps, same formatter across the platform
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:          true,
		DisableSorting:         true,
		DisableLevelTruncation: true,
	})
}

type app struct {
	settings     environment.Settings
	orchestrator *orchestrator.Orchestrator
	scheduler    *scheduler.TimerScheduler
}

func buildApp() *app {
	// .env is optional, the environment wins either way
	_ = godotenv.Load()

	settings := environment.GetENV()
	if level, err := logrus.ParseLevel(settings.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	runner := command.NewRunner()
	client := cluster.NewKubectlClient(runner, settings.KubectlBinary, settings.CommandTimeout)
	sched := scheduler.NewTimerScheduler()
	registry := scenarios.NewDefaultRegistry(settings, client, sched)

	return &app{
		settings:     settings,
		orchestrator: orchestrator.New(registry),
		scheduler:    sched,
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the chaos orchestrator HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := buildApp()

			router := api.NewRouter(a.orchestrator)
			server := &http.Server{
				Addr:    ":" + strconv.Itoa(a.settings.Port),
				Handler: router,
			}

			go func() {
				log.Infof("[Start]: chaos-service listening on port %v", a.settings.Port)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Unable to start the server, %v", err)
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			log.Info("[Stop]: Shutting down, abandoning pending compensating actions")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				log.Errorf("Forced shutdown, %v", err)
			}
			a.scheduler.Stop()
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	var scenario string
	var durationMs int64

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a single chaos scenario and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := buildApp()

			result, err := a.orchestrator.Execute(cmd.Context(), scenarios.Request{
				ScenarioID: scenario,
				Duration:   time.Duration(durationMs) * time.Millisecond,
			})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			// compensating actions outlive the request, wait for them here
			// so a one-shot run still scales back down
			a.scheduler.Drain()
			return nil
		},
	}
	cmd.Flags().StringVar(&scenario, "scenario", "pod-killer", "scenario id to execute")
	cmd.Flags().Int64Var(&durationMs, "duration", 0, "duration in milliseconds, 0 means the scenario default")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available chaos scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := buildApp()

			for _, d := range a.orchestrator.Scenarios() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s (default %vs)\n", d.ID, d.Description, int(d.DefaultDuration.Seconds()))
			}
			return nil
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:           "chaos-service",
		Short:         "Chaos experiment orchestrator of the SRE demo platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newRunCmd(), newListCmd())

	if err := root.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
