// Copyright (c) 2026 Kritika. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"kritika/internal/platform/apperr"
	"kritika/internal/platform/ctxutil"
	"kritika/internal/platform/sec"
	"kritika/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
// It returns [validate.ErrInvalidJSON] if decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// IntParam retrieves a named URL parameter and parses it as int64.
// A malformed value maps to a NotFound error: numeric route params identify
// resources, and "/titles/abc" names a title that cannot exist.
func IntParam(request *http.Request, name, resource string) (int64, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.NotFound(resource)
	}
	return id, nil
}

// Claims extracts the authenticated user claims from the request context.
// Returns nil if the request is not authenticated.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims ensures the request is authenticated and returns the user claims.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}
