package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/MKhiriev/go-shipy/internal/config"
)

const (
	argonSaltLength = 16
	argonKeyLength  = 32

	// upper bounds accepted when parsing a stored hash
	maxArgonMemory  = 1 << 22 // 4 GiB in KiB
	maxArgonTime    = 64
	maxArgonKeySize = 1024
)

// ArgonParams are the argon2id cost parameters. Memory is in KiB.
type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
}

// ArgonParamsFromConfig reads the argon2id parameters from cfg.
func ArgonParamsFromConfig(cfg config.App) ArgonParams {
	return ArgonParams{
		Memory:  cfg.ArgonMemory,
		Time:    cfg.ArgonTime,
		Threads: cfg.ArgonThreads,
	}
}

// argon2Hasher stores passwords as PHC strings:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
//
// Salt and hash are unpadded standard base64. Verification uses the
// parameters stored in the string, so changing the configured cost only
// affects new hashes.
type argon2Hasher struct {
	params ArgonParams
	rand   io.Reader
}

func NewPasswordHasher(params ArgonParams) PasswordHasher {
	return &argon2Hasher{params: params, rand: rand.Reader}
}

func (h *argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("%w: %w", ErrCredentialHashFailure, err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, argonKeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *argon2Hasher) Verify(password, encoded string) bool {
	params, salt, key, ok := decodeArgon2Hash(encoded)
	if !ok {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(candidate, key) == 1
}

func decodeArgon2Hash(encoded string) (ArgonParams, []byte, []byte, bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return ArgonParams{}, nil, nil, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return ArgonParams{}, nil, nil, false
	}

	var p ArgonParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return ArgonParams{}, nil, nil, false
	}
	if p.Memory == 0 || p.Memory > maxArgonMemory || p.Time == 0 || p.Time > maxArgonTime || p.Threads == 0 {
		return ArgonParams{}, nil, nil, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return ArgonParams{}, nil, nil, false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > maxArgonKeySize {
		return ArgonParams{}, nil, nil, false
	}

	return p, salt, key, true
}

// dummyArgon2Hash returns a well-formed hash with the given cost that no
// password matches. Verifying against it for unknown emails makes that
// path cost the same as a wrong password.
func dummyArgon2Hash(params ArgonParams) string {
	salt := make([]byte, argonSaltLength)
	key := make([]byte, argonKeyLength)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		params.Memory, params.Time, params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}
