package notify

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conference-outreach/internal/common/config"
	"conference-outreach/internal/common/errors"
	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeEmail struct {
	sent []*ses.SendEmailInput
	err  error
}

func (f *fakeEmail) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, input)
	return &ses.SendEmailOutput{}, nil
}

type fakeSMS struct {
	published []*sns.PublishInput
	err       error
}

func (f *fakeSMS) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.published = append(f.published, input)
	return &sns.PublishOutput{}, nil
}

func notifyConfig(email, sms bool) *config.NotificationConfig {
	cfg := &config.NotificationConfig{}
	cfg.Email.Enabled = email
	cfg.Email.FromEmail = "noreply@compilers.example"
	cfg.Email.ToEmail = "grace@compilers.example"
	cfg.SMS.Enabled = sms
	cfg.SMS.PhoneNumber = "+15555550100"
	return cfg
}

func testRun() *models.WorkflowRun {
	return &models.WorkflowRun{
		Event:      "TechSummit 2025",
		Researched: models.StageCounts{OK: 2, Total: 2},
		Messaged:   models.StageCounts{OK: 2, Total: 2},
	}
}

// ==========================
// Operator
// ==========================

func TestOperator_RunCompleted_SendsOverEnabledChannels(t *testing.T) {
	email := &fakeEmail{}
	sms := &fakeSMS{}
	op := NewOperator(notifyConfig(true, true), email, sms, logger.NewTestLogger(t))

	require.NoError(t, op.RunCompleted(context.Background(), testRun()))
	require.Len(t, email.sent, 1)
	require.Len(t, sms.published, 1)
	assert.Equal(t, "grace@compilers.example", email.sent[0].Destination.ToAddresses[0])
	assert.Contains(t, *sms.published[0].Message, "TechSummit 2025")
}

func TestOperator_RunCompleted_DisabledChannelsStaySilent(t *testing.T) {
	email := &fakeEmail{}
	sms := &fakeSMS{}
	op := NewOperator(notifyConfig(false, false), email, sms, logger.NewTestLogger(t))

	require.NoError(t, op.RunCompleted(context.Background(), testRun()))
	assert.Empty(t, email.sent)
	assert.Empty(t, sms.published)
}

func TestOperator_BatchSent_EmailFailureStillSendsSMS(t *testing.T) {
	email := &fakeEmail{err: fmt.Errorf("ses throttled")}
	sms := &fakeSMS{}
	op := NewOperator(notifyConfig(true, true), email, sms, logger.NewTestLogger(t))

	err := op.BatchSent(context.Background(), "TechSummit 2025", &models.BatchResult{Total: 1, Successful: 1})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotificationSendFailed, errors.CodeOf(err))
	assert.Len(t, sms.published, 1)
}

func TestNoop_DiscardsEverything(t *testing.T) {
	var n Noop
	assert.NoError(t, n.RunCompleted(context.Background(), testRun()))
	assert.NoError(t, n.BatchSent(context.Background(), "TechSummit 2025", &models.BatchResult{}))
}
