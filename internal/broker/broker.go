package broker

import (
	"context"

	"github.com/Egor213/RBACPanel/internal/domain"
)

type Producer interface {
	PublishAlerts(ctx context.Context, alerts []domain.Alert) error
	Close() error
}
