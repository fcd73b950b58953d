package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"

	"worksim.service/internal/core/model"
	"worksim.service/internal/ports/messaging"
	"worksim.service/internal/ports/repository"
)

// ActivityProcessor handles jobs from the activity feed queue, persisting
// narrated transitions so the presentation layer has a feed to read.
type ActivityProcessor struct {
	repo repository.ActivityRepository
}

// NewProcessor creates a new processor for the activity feed queue.
func NewProcessor(repo repository.ActivityRepository) *ActivityProcessor {
	return &ActivityProcessor{repo: repo}
}

// Process is the core logic for handling a message from the activity queue.
// SQS delivers at least once, so the activity id works as the dedup key.
func (p *ActivityProcessor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.ActivityEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal activity event")
		return false, 0, err // Do not retry on malformed message
	}

	exists, err := p.repo.Exists(ctx, event.ActivityID)
	if err != nil {
		return true, 10, fmt.Errorf("failed to check for existing activity: %w", err)
	}
	if exists {
		log.Ctx(ctx).Info().Str("activity_id", event.ActivityID).Msg("Activity already persisted. Skipping.")
		return false, 0, nil
	}

	err = p.repo.Insert(ctx, &model.Activity{
		ID:         event.ActivityID,
		EmployeeID: event.EmployeeID,
		Kind:       event.Kind,
		Message:    event.Message,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return true, calculateBackoff(1), fmt.Errorf("failed to persist activity: %w", err)
	}
	return false, 0, nil
}

// calculateBackoff determines how long to wait before retrying a failed job.
// It increases the delay exponentially with each retry.
func calculateBackoff(retryCount int) int32 {
	backoff := int32(math.Pow(2, float64(retryCount)) * 10)
	if backoff > 3600 {
		return 3600 // max at 1 hour
	}
	return backoff
}
