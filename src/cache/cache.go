package cache

import (
	"context"

	"github.com/fluentos/desktop-admin-api/src/models"
)

// BroadcastCache stores the currently active broadcast.
//
// Get reports hit=true when the cache holds an answer, which may be a nil
// broadcast meaning "nothing is active". A miss returns hit=false.
type BroadcastCache interface {
	Get(ctx context.Context) (b *models.Broadcast, hit bool, err error)
	Set(ctx context.Context, b *models.Broadcast) error
	Invalidate(ctx context.Context) error
	Close() error
}

// Noop is used when no cache backend is configured
type Noop struct{}

func (Noop) Get(context.Context) (*models.Broadcast, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, *models.Broadcast) error         { return nil }
func (Noop) Invalidate(context.Context) error                     { return nil }
func (Noop) Close() error                                         { return nil }

var _ BroadcastCache = Noop{}
