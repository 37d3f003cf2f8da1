package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ruangkerja/leave-management/internal/core/events"
	"github.com/ruangkerja/leave-management/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Manage events: publish test events, monitor event bus, inspect handlers`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long:  `Publish a test event to the event bus for testing and debugging. Known leave lifecycle types get a realistic payload.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var eventData string

// testEventFor builds a realistic lifecycle event for the known leave event
// types so subscribers see the same shape they would in production.
func testEventFor(eventType string) events.Event {
	requestID := uuid.New().String()
	switch eventType {
	case events.EventTypeLeaveSubmitted:
		return events.NewLeaveSubmittedEvent(requestID, 1, 1, 5)
	case events.EventTypeLeaveApproved:
		return events.NewLeaveApprovedEvent(requestID, 1, 1, 5, 2)
	case events.EventTypeLeaveRejected:
		return events.NewLeaveRejectedEvent(requestID, 1, 1, 2, eventData)
	case events.EventTypeLeaveCancelled:
		return events.NewLeaveCancelledEvent(requestID, 1, 1, 5, 1)
	default:
		return events.BaseEvent{
			ID:        fmt.Sprintf("test-%d", time.Now().Unix()),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"message": eventData,
				"source":  "cli-command",
			},
		}
	}
}

func publishTestEvent(eventType string) {
	logger := logger.LoggerWrapper()

	eventBus := events.NewEventBus(logger)

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		logger.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	testEvent := testEventFor(eventType)

	logger.Info("publishing test event", "event_type", eventType, "event_id", testEvent.EventID())

	ctx := context.Background()
	if err := eventBus.Publish(ctx, testEvent); err != nil {
		logger.Error("failed to publish event", "error", err)
		return
	}

	time.Sleep(100 * time.Millisecond)
	logger.Info("test event published successfully")
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Event data message")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
