package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// SOSEscalationInput is the input for the SOS escalation workflow.
type SOSEscalationInput struct {
	AlertID string
	UserID  string
	Lat     float64
	Lon     float64
}

// SOSEscalationWorkflow looks up the user's emergency contact, describes
// where the user is and notifies the contact. If the contact cannot be
// reached the alert is marked failed (saga compensation).
func SOSEscalationWorkflow(ctx workflow.Context, input SOSEscalationInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting SOS escalation", "alertID", input.AlertID)

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	// Step 1: Find who to call
	var contact ContactInfo
	err := workflow.ExecuteActivity(ctx, "LookupContact", input.UserID).Get(ctx, &contact)
	if err != nil {
		logger.Warn("no emergency contact, marking alert failed", "error", err)
		_ = workflow.ExecuteActivity(ctx, "MarkFailed", input.AlertID).Get(ctx, nil)
		return err
	}

	// Step 2: Describe the location; a failure degrades to coordinates
	var place string
	if err := workflow.ExecuteActivity(ctx, "DescribeLocation", input.Lat, input.Lon).Get(ctx, &place); err != nil {
		logger.Warn("reverse geocoding failed", "error", err)
		place = ""
	}

	// Step 3: Notify the contact
	err = workflow.ExecuteActivity(ctx, "NotifyContact", NotifyInput{
		Contact: contact,
		UserID:  input.UserID,
		Place:   place,
		Lat:     input.Lat,
		Lon:     input.Lon,
	}).Get(ctx, nil)
	if err != nil {
		logger.Warn("notification failed, compensating", "error", err)
		// Compensate: the alert was never delivered
		_ = workflow.ExecuteActivity(ctx, "MarkFailed", input.AlertID).Get(ctx, nil)
		return err
	}

	// Step 4: Record delivery
	if err := workflow.ExecuteActivity(ctx, "MarkDispatched", input.AlertID).Get(ctx, nil); err != nil {
		return err
	}

	logger.Info("SOS alert dispatched", "alertID", input.AlertID)
	return nil
}
