// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/taibuivan/lumo/internal/platform/apperr"
	"github.com/taibuivan/lumo/internal/platform/ctxutil"
	"github.com/taibuivan/lumo/internal/platform/respond"
)

// RequireUser blocks requests whose token subject does not resolve to a
// stored account, and injects the resolved [*User] into the request context.
//
// # Usage
//
// Must be registered in the router AFTER [middleware.Authenticate]. It
// subsumes a plain authentication check: anonymous requests are rejected too.
//
// # Flow
//  1. Check that verified claims exist in context (implies a valid token).
//  2. Look the subject up in the user store.
//  3. If no matching account exists, abort with the SAME generic 401 as a
//     bad token — an attacker must not learn whether an account exists.
//  4. Inject the resolved user for downstream handlers.
func RequireUser(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			user, err := service.CurrentUser(request.Context(), claims.UserID)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			ctx := WithUser(request.Context(), user)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequiredUser returns the resolved user for a request behind [RequireUser].
//
// Returns an [apperr.Unauthorized] error if the middleware did not run,
// which indicates a route wiring mistake rather than a client fault.
func RequiredUser(request *http.Request) (*User, error) {
	user := UserFrom(request.Context())
	if user == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return user, nil
}
