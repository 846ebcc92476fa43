package workflows

import (
	"context"
	"log/slog"

	"go.temporal.io/sdk/client"

	"github.com/samirrijal/saferoute/internal/core/domain"
	"github.com/samirrijal/saferoute/internal/core/ports"
)

// WorkflowStarter is the subset of client.Client used to start escalations.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// EscalationID is the workflow ID for an alert. A redelivered alert maps
// to the same ID and joins the running escalation.
func EscalationID(alertID string) string {
	return "sos-" + alertID
}

// DispatchAlerts starts one SOSEscalationWorkflow per alert received from
// events. Start failures are returned to the subscriber for redelivery.
func DispatchAlerts(ctx context.Context, events ports.EventSubscriber, starter WorkflowStarter, taskQueue string) error {
	return events.SubscribeSOSAlerts(ctx, func(ctx context.Context, alert *domain.SOSAlert) error {
		_, err := starter.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
			ID:        EscalationID(alert.ID),
			TaskQueue: taskQueue,
		}, SOSEscalationWorkflow, SOSEscalationInput{
			AlertID: alert.ID,
			UserID:  alert.UserID,
			Lat:     alert.Location.Lat,
			Lon:     alert.Location.Lon,
		})
		if err != nil {
			slog.ErrorContext(ctx, "start sos escalation failed", "alert_id", alert.ID, "error", err)
			return err
		}
		slog.InfoContext(ctx, "sos escalation started", "alert_id", alert.ID, "workflow_id", EscalationID(alert.ID))
		return nil
	})
}
