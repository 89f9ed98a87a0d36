package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/DragonsUnit/AeroCommerce/pkg/config"
	"golang.org/x/crypto/argon2"
)

// Hasher hashes and verifies passwords with argon2id.
type Hasher struct {
	memoryKB    uint32
	time        uint32
	parallelism uint8
	saltLen     uint32
	keyLen      uint32
}

var ErrPasswordMismatch = errors.New("password does not match")

// NewHasher builds a Hasher from config, clamping out-of-range parameters.
func NewHasher(cfg config.PasswordConfig) *Hasher {
	return &Hasher{
		memoryKB:    clampUint32(cfg.ArgonMemoryKB, 8*1024, 1024*1024),
		time:        clampUint32(cfg.ArgonTime, 1, 10),
		parallelism: clampUint8(cfg.ArgonParallelism, 1, 8),
		saltLen:     clampUint32(cfg.ArgonSaltLen, 8, 64),
		keyLen:      clampUint32(cfg.ArgonKeyLen, 16, 128),
	}
}

// Hash derives an argon2id hash and returns it in the standard encoded form.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, h.time, h.memoryKB, h.parallelism, h.keyLen)
	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memoryKB,
		h.time,
		h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify checks password against an encoded hash in constant time.
func (h *Hasher) Verify(password, encoded string) error {
	memoryKB, time, parallelism, salt, key, err := decodeHash(encoded)
	if err != nil {
		return err
	}
	candidate := argon2.IDKey([]byte(password), salt, time, memoryKB, parallelism, uint32(len(key)))
	if subtle.ConstantTimeCompare(key, candidate) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

func decodeHash(encoded string) (memoryKB, time uint32, parallelism uint8, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, errors.New("malformed password hash")
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, errors.New("malformed password hash version")
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, errors.New("unsupported argon2 version")
	}
	var p uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memoryKB, &time, &p); err != nil {
		return 0, 0, 0, nil, nil, errors.New("malformed password hash parameters")
	}
	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, errors.New("malformed password hash salt")
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, errors.New("malformed password hash key")
	}
	return memoryKB, time, p, salt, key, nil
}

func clampUint32(v, min, max int) uint32 {
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return uint32(v)
}

func clampUint8(v, min, max int) uint8 {
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return uint8(v)
}
