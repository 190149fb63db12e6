// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// Sessions are stateless (no revocation list), so expiry is the only
	// invalidation mechanism.
	AccessTokenTTL = 7 * 24 * time.Hour

	// MinPasswordLength is the minimum accepted password length at registration.
	MinPasswordLength = 8
)
