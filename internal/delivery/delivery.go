// Package delivery defines the contract every transport entry point fulfills.
package delivery

import "context"

// Delivery is a serving surface of the application, such as an HTTP server.
type Delivery interface {
	Serve(ctx context.Context) error
}
