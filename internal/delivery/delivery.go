// Package delivery defines the contract shared by the transport servers.
package delivery

import "context"

// Delivery is a transport entrypoint started by the application runner.
// Serve blocks until the underlying server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
