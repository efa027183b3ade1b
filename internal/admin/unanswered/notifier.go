// internal/admin/unanswered/notifier.go
package unanswered

import (
	"context"
	"fmt"

	"banking-assistant/internal/common/aws"
	apperrors "banking-assistant/internal/common/errors"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/common/validation"
	"banking-assistant/internal/models"
)

// Notifier tells the user their escalated question has been answered. SMS via
// SNS when a real mobile number is on file, email via SES when configured.
type Notifier struct {
	sns        *aws.SNSClient
	ses        *aws.SESClient
	fromEmail  string
	adminEmail string
	logger     logger.Logger
}

func NewNotifier(sns *aws.SNSClient, ses *aws.SESClient, fromEmail, adminEmail string, log logger.Logger) *Notifier {
	return &Notifier{
		sns:        sns,
		ses:        ses,
		fromEmail:  fromEmail,
		adminEmail: adminEmail,
		logger:     log,
	}
}

// NotifyAnswered sends the answer to the user. Failures are returned for
// logging but never block the answer workflow.
func (n *Notifier) NotifyAnswered(ctx context.Context, q models.UnansweredQuestion) error {
	if !q.NotifyUser {
		return nil
	}

	message := fmt.Sprintf("Bank of Maharashtra: your question %q has been answered: %s", truncate(q.Question, 80), q.Answer)

	if n.sns != nil && validation.ValidatePhone(q.MobileNo) {
		if err := n.sns.PublishSMS(ctx, q.MobileNo, message); err != nil {
			return apperrors.NewNotificationSendFailedError("sms", err)
		}
		n.logger.Info("answer notification sent", map[string]interface{}{
			"question_id": q.ID,
			"channel":     "sms",
		})
		return nil
	}

	if n.ses != nil && n.adminEmail != "" {
		err := n.ses.SendPlainEmail(ctx, n.fromEmail, n.adminEmail,
			"Escalated question answered", message)
		if err != nil {
			return apperrors.NewNotificationSendFailedError("email", err)
		}
		n.logger.Info("answer notification sent", map[string]interface{}{
			"question_id": q.ID,
			"channel":     "email",
		})
		return nil
	}

	n.logger.Warn("no notification channel available", map[string]interface{}{
		"question_id": q.ID,
		"mobile_no":   q.MobileNo,
	})
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
