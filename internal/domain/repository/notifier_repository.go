package repository

import (
	"context"

	"github.com/diillson/aws-daily-cost-report/internal/domain/entity"
)

// NotifierRepository posts messages to a chat channel. Failures are reported
// through the returned Delivery, never as an error.
type NotifierRepository interface {
	Post(ctx context.Context, msg entity.Message) entity.Delivery
}
