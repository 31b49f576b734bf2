package server

import (
	"context"

	"sportkalender-service/internal/poller"
)

// Poller defines the refresher behavior the server drives.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}
