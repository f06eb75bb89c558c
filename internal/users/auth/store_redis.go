// Copyright (c) 2026 Kritika. All rights reserved.

package auth

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// # Cooldown Repository

// RedisCooldownRepository implements CooldownRepository using Redis.
type RedisCooldownRepository struct {
	client *redis.Client
}

// NewCooldownRepository creates a new Redis-backed CooldownRepository.
func NewCooldownRepository(client *redis.Client) *RedisCooldownRepository {
	return &RedisCooldownRepository{client: client}
}

/*
Acquire claims the signup cooldown slot for a username.

Description: SETNX with a TTL makes the claim atomic; the key expires on its
own, so there is nothing to release.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - bool: true if the slot was free
  - error: Connectivity failures
*/
func (repository *RedisCooldownRepository) Acquire(context context.Context, username string) (bool, error) {
	key := fmt.Sprintf("auth:signup_cooldown:%s", username)

	acquired, err := repository.client.SetNX(context, key, 1, SignupCooldownTTL).Result()
	if err != nil {
		return false, fmt.Errorf("redis_signup_cooldown_failed: %w", err)
	}

	return acquired, nil
}
