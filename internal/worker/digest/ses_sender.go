package digest

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"worksim.service/pkg/telemetry"
)

// EmailService sends the end-of-day departure summary to an employee.
type EmailService interface {
	SendDepartureSummary(ctx context.Context, to string, employeeName string) error
}

type SESEmailService struct {
	client *ses.Client
	sender string
}

func NewSESEmailService(client *ses.Client, sender string) *SESEmailService {
	return &SESEmailService{client: client, sender: sender}
}

func (s *SESEmailService) SendDepartureSummary(ctx context.Context, to string, employeeName string) error {
	tracer := otel.Tracer("ses-digest-service")
	ctx, span := tracer.Start(ctx, "send_digest_email", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(attribute.String("app.recipient", to))
	if employeeID := telemetry.GetEmployeeIDFromContext(ctx); employeeID != "" {
		span.SetAttributes(attribute.String("app.employee_id", employeeID))
	}

	input := &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String("End of Day Summary"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(fmt.Sprintf("Hello %s,\n\nYou clocked out for the day. See you tomorrow morning.", employeeName)),
				},
			},
		},
	}

	_, err := s.client.SendEmail(ctx, input)
	return err
}
