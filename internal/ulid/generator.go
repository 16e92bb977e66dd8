// Package ulid generates ids for cells created outside of the parser.
package ulid

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator returns a new id on every call.
type Generator func() string

var (
	mu        sync.RWMutex
	generator Generator = DefaultGenerator

	entropyOnce sync.Once
	entropy     io.Reader
)

func defaultEntropy() io.Reader {
	entropyOnce.Do(func() {
		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rand.Reader, 0),
		}
	})
	return entropy
}

// DefaultGenerator produces monotonic ULIDs.
func DefaultGenerator() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), defaultEntropy()).String()
}

// GenerateID returns a new id from the current generator.
func GenerateID() string {
	mu.RLock()
	defer mu.RUnlock()
	return generator()
}

// ValidID reports whether id is a canonical ULID string.
func ValidID(id string) bool {
	parsed, err := ulid.ParseStrict(id)
	return err == nil && parsed.String() == id
}

// MockGenerator makes GenerateID return value until ResetGenerator is called.
func MockGenerator(value string) {
	SetGenerator(func() string { return value })
}

// SetGenerator replaces the generator used by GenerateID.
func SetGenerator(g Generator) {
	mu.Lock()
	defer mu.Unlock()
	generator = g
}

func ResetGenerator() {
	SetGenerator(DefaultGenerator)
}
