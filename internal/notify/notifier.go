// internal/notify/notifier.go
package notify

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"conference-outreach/internal/common/config"
	"conference-outreach/internal/common/errors"
	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/models"
)

// Notifier tells the operator about pipeline milestones.
type Notifier interface {
	RunCompleted(ctx context.Context, run *models.WorkflowRun) error
	BatchSent(ctx context.Context, event string, result *models.BatchResult) error
}

// EmailSender sends one email via SES.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// SMSSender publishes one SMS via SNS.
type SMSSender interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// Noop discards all notifications. Used when neither channel is
// enabled.
type Noop struct{}

func (Noop) RunCompleted(ctx context.Context, run *models.WorkflowRun) error { return nil }

func (Noop) BatchSent(ctx context.Context, event string, result *models.BatchResult) error {
	return nil
}

// Operator notifies the operator over the enabled channels. A failure
// on one channel does not stop the other.
type Operator struct {
	config *config.NotificationConfig
	email  EmailSender
	sms    SMSSender
	logger logger.Logger
}

func NewOperator(cfg *config.NotificationConfig, email EmailSender, sms SMSSender, log logger.Logger) *Operator {
	return &Operator{
		config: cfg,
		email:  email,
		sms:    sms,
		logger: log.WithFields(map[string]interface{}{
			"component": "notify",
		}),
	}
}

func (o *Operator) RunCompleted(ctx context.Context, run *models.WorkflowRun) error {
	subject := fmt.Sprintf("Outreach run finished: %s", run.Event)
	body := fmt.Sprintf(
		"The outreach run for %s has finished.\n\nResearched: %d/%d\nMessages drafted: %d/%d\n\nDrafts are waiting for review in the approval table.",
		run.Event,
		run.Researched.OK, run.Researched.Total,
		run.Messaged.OK, run.Messaged.Total)

	return o.deliver(ctx, subject, body)
}

func (o *Operator) BatchSent(ctx context.Context, event string, result *models.BatchResult) error {
	subject := fmt.Sprintf("Outreach messages sent: %s", event)
	body := fmt.Sprintf(
		"The send simulation for %s has finished.\n\nTotal: %d\nSuccessful: %d\nFailed: %d",
		event, result.Total, result.Successful, result.Failed)

	return o.deliver(ctx, subject, body)
}

func (o *Operator) deliver(ctx context.Context, subject, body string) error {
	var firstErr error

	if o.config.Email.Enabled && o.email != nil {
		if err := o.sendEmail(ctx, subject, body); err != nil {
			o.logger.Error("email notification failed", map[string]interface{}{
				"error": err.Error(),
			})
			firstErr = errors.NewNotificationSendFailedError("email", err)
		}
	}

	if o.config.SMS.Enabled && o.sms != nil {
		if err := o.sendSMS(ctx, subject); err != nil {
			o.logger.Error("sms notification failed", map[string]interface{}{
				"error": err.Error(),
			})
			if firstErr == nil {
				firstErr = errors.NewNotificationSendFailedError("sms", err)
			}
		}
	}

	return firstErr
}

func (o *Operator) sendEmail(ctx context.Context, subject, body string) error {
	_, err := o.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: awssdk.String(o.config.Email.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{o.config.Email.ToEmail},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: awssdk.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: awssdk.String(body)},
			},
		},
	})
	return err
}

func (o *Operator) sendSMS(ctx context.Context, message string) error {
	_, err := o.sms.Publish(ctx, &sns.PublishInput{
		PhoneNumber: awssdk.String(o.config.SMS.PhoneNumber),
		Message:     awssdk.String(message),
	})
	return err
}
