package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/travelease/travelease/internal/model"
)

// recentVehiclesKey holds the JSON-encoded newest-vehicles list served
// by the recent-vehicles endpoint.
const recentVehiclesKey = "vehicles:recent"

// recentVehiclesTTL is a backstop; the entry is invalidated explicitly
// on every vehicle mutation.
const recentVehiclesTTL = 5 * time.Minute

// GetRecentVehicles returns the cached recent-vehicles list, or nil on
// a miss. Cache errors degrade to a miss.
func (c *Cache) GetRecentVehicles(ctx context.Context) ([]*model.Vehicle, error) {
	data, err := c.client.Get(ctx, recentVehiclesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var vehicles []*model.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		// Corrupt entry: treat as a miss and drop it.
		_ = c.client.Del(ctx, recentVehiclesKey).Err()
		return nil, nil
	}
	return vehicles, nil
}

// SetRecentVehicles caches the recent-vehicles list.
func (c *Cache) SetRecentVehicles(ctx context.Context, vehicles []*model.Vehicle) error {
	data, err := json.Marshal(vehicles)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, recentVehiclesKey, data, recentVehiclesTTL).Err()
}

// InvalidateRecentVehicles drops the cached recent-vehicles list.
// Called after any vehicle create, update or delete.
func (c *Cache) InvalidateRecentVehicles(ctx context.Context) error {
	return c.client.Del(ctx, recentVehiclesKey).Err()
}
