package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// authKeyPrefix namespaces verified-token entries.
const authKeyPrefix = "auth:subject:"

// authTTL bounds how long a verified token stays trusted without
// re-verification against the identity provider.
const authTTL = 10 * time.Minute

// GetVerifiedSubject returns the subject email cached for a token hash,
// or empty string on a miss. Cache errors degrade to a miss.
func (c *Cache) GetVerifiedSubject(ctx context.Context, tokenHash string) (string, error) {
	email, err := c.client.Get(ctx, authKeyPrefix+tokenHash).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return email, nil
}

// SetVerifiedSubject caches the subject email for a token hash.
func (c *Cache) SetVerifiedSubject(ctx context.Context, tokenHash, email string) error {
	return c.client.Set(ctx, authKeyPrefix+tokenHash, email, authTTL).Err()
}
