package vehicle

import "context"

// Store reads vehicles. The risk engine only ever reads this table; listing
// CRUD lives outside this service.
type Store interface {
	FindByID(ctx context.Context, vehicleID string) (*Vehicle, error)
}
