// Copyright (c) 2026 Kritika. All rights reserved.

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kritika/internal/platform/constants"
	"kritika/internal/platform/middleware"
)

func rateLimitedOK(ctx context.Context) http.Handler {
	return middleware.RateLimit(ctx)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))
}

func getFrom(handler http.Handler, ip string) int {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRealIP, ip)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder.Code
}

/*
TestRateLimit_ExhaustsBurst verifies that a single client is throttled once
its token bucket is drained.
*/
func TestRateLimit_ExhaustsBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := rateLimitedOK(ctx)

	// 1. The full burst is allowed through
	for i := 0; i < constants.DefaultRateLimitBurst; i++ {
		require.Equal(t, http.StatusOK, getFrom(handler, "203.0.113.7"))
	}

	// 2. The next request is rejected
	assert.Equal(t, http.StatusTooManyRequests, getFrom(handler, "203.0.113.7"))

	// 3. Other clients keep their own bucket
	assert.Equal(t, http.StatusOK, getFrom(handler, "203.0.113.8"))
}

/*
TestRateLimit_InstancesAreIndependent verifies that each middleware instance
owns its bucket map, so draining one does not throttle another.
*/
func TestRateLimit_InstancesAreIndependent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := rateLimitedOK(ctx)
	second := rateLimitedOK(ctx)

	// 1. Drain the first instance for one client
	for i := 0; i < constants.DefaultRateLimitBurst; i++ {
		require.Equal(t, http.StatusOK, getFrom(first, "203.0.113.9"))
	}
	require.Equal(t, http.StatusTooManyRequests, getFrom(first, "203.0.113.9"))

	// 2. The same client is still fresh on the second instance
	assert.Equal(t, http.StatusOK, getFrom(second, "203.0.113.9"))
}
