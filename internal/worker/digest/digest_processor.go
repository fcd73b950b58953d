package digest

import (
	"context"
	"encoding/json"
	"math"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"

	"worksim.service/internal/ports/messaging"
)

// DigestProcessor handles jobs from the digest queue, mailing each departing
// employee their end-of-day summary. The departure processor's clock_out
// idempotency guard caps the stream at one event per employee per day, so
// there is no status column to track here.
type DigestProcessor struct {
	emailService EmailService
	mailDomain   string
}

// NewProcessor sets up a new processor for handling digest jobs.
func NewProcessor(emailService EmailService, mailDomain string) *DigestProcessor {
	return &DigestProcessor{
		emailService: emailService,
		mailDomain:   mailDomain,
	}
}

// Process is the main entry point for handling a message from the digest queue.
// It tries to send an email and will tell the worker to retry if something goes wrong.
func (p *DigestProcessor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.DigestEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal digest event")
		return false, 0, err // Do not retry on malformed message
	}

	to := event.EmployeeID + "@" + p.mailDomain
	if err := p.emailService.SendDepartureSummary(ctx, to, event.EmployeeName); err != nil {
		// SQS redelivers; the visibility delay grows with each receive.
		return true, calculateBackoff(receiveCount(msg)), err
	}

	log.Ctx(ctx).Info().Str("employee_id", event.EmployeeID).Msg("Departure digest sent")
	return false, 0, nil
}

func receiveCount(msg types.Message) int {
	if v, ok := msg.Attributes["ApproximateReceiveCount"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

// calculateBackoff determines how long to wait before retrying a failed job.
// It increases the delay exponentially with each retry to avoid overwhelming a struggling service.
func calculateBackoff(retryCount int) int32 {
	backoff := int32(math.Pow(2, float64(retryCount)) * 10)
	if backoff > 3600 { // Cap at 1 hour
		return 3600
	}
	return backoff
}
