// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters tuned for an interactive login workload.
//
// # Why argon2id?
//
// Unlike bcrypt, argon2id is memory-hard: brute-forcing a stolen hash requires
// 64 MiB of RAM per guess, which neutralizes GPU cracking rigs.
const (
	argonMemory      = 64 * 1024
	argonIterations  = 1
	argonParallelism = 4
	argonSaltLength  = 16
	argonKeyLength   = 32
)

// HashPassword hashes a plain-text password using the argon2id algorithm.
//
// Each call generates a fresh random salt, so hashing the same password twice
// yields two different encoded strings. Use [CheckPasswordHash] for comparison,
// never string equality.
func HashPassword(plainTextPassword string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("auth: failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plainTextPassword), salt, argonIterations, argonMemory, argonParallelism, argonKeyLength)

	// Standard PHC string format, compatible with other argon2 implementations.
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonIterations,
		argonParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// It recomputes the digest using the salt and parameters embedded in the
// encoded hash and compares in constant time. A malformed hash is treated as
// a verification failure, never an error or panic.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	salt, expectedKey, iterations, memory, parallelism, ok := decodeArgonHash(existingHash)
	if !ok {
		return false
	}

	key := argon2.IDKey([]byte(plainTextPassword), salt, iterations, memory, parallelism, uint32(len(expectedKey)))

	return subtle.ConstantTimeCompare(key, expectedKey) == 1
}

// decodeArgonHash parses a PHC-formatted argon2id string into its components.
func decodeArgonHash(encoded string) (salt, key []byte, iterations, memory uint32, parallelism uint8, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, false
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return nil, nil, 0, 0, 0, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, false
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, 0, 0, 0, false
	}

	return salt, key, iterations, memory, parallelism, true
}
