package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/frahmantamala/timeoff-management/internal/core/events"
	"github.com/frahmantamala/timeoff-management/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers such as the event bus notification worker.`,
}

var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Start event bus worker",
	Long:  `Start the event bus and log time off lifecycle events as they arrive`,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

func startEventWorker() {
	_, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.LoggerWrapper()

	eventBus := events.NewEventBus(log)
	registerNotificationHandlers(eventBus, log)

	log.Info("event bus worker started. Waiting for events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Info("received signal, shutting down event bus", "signal", sig)
	log.Info("event bus shutdown complete")
}

// registerNotificationHandlers subscribes the notification handlers used by
// both the HTTP server and the standalone worker. Today notifications are
// structured log lines; a mail or chat integration would hang off the same
// subscriptions.
func registerNotificationHandlers(bus *events.EventBus, log *slog.Logger) {
	bus.Subscribe(events.TimeOffRequested, func(ctx context.Context, event events.Event) error {
		log.Info("time off requested",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})

	bus.Subscribe(events.TimeOffCancelled, func(ctx context.Context, event events.Event) error {
		log.Info("time off cancelled",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})

	bus.Subscribe(events.TimeOffReviewed, func(ctx context.Context, event events.Event) error {
		log.Info("time off reviewed",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})
}

func init() {
	workerCmd.AddCommand(eventWorkerCmd)
}
