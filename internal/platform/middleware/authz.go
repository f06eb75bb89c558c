// Copyright (c) 2026 Kritika. All rights reserved.

package middleware

import (
	"net/http"
	"strings"

	"kritika/internal/platform/apperr"
	"kritika/internal/platform/ctxutil"
	"kritika/internal/platform/respond"
	"kritika/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the JWT service
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// Anonymous access is allowed for all public reads
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireCatalogWrite blocks catalog mutations from anyone who is not an
// admin, as decided by [sec.CanWriteCatalog]. It implies [RequireAuth].
func RequireCatalogWrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		if !sec.CanWriteCatalog(claims) {
			respond.Error(writer, request, apperr.Forbidden("Catalog writes require the admin role"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireUserAdmin blocks account-management endpoints from anyone who is not
// an admin, as decided by [sec.CanManageUsers]. It implies [RequireAuth].
func RequireUserAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		if !sec.CanManageUsers(claims) {
			respond.Error(writer, request, apperr.Forbidden("User management requires the admin role"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
