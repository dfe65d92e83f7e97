// Package device provides the identifier that scopes notes to this machine.
//
// The identifier is generated on first use and persisted through a Storage.
// It is never rotated: every note this client creates carries it, and list
// requests only return notes created under it.
package device

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"
)

// StorageKey is the key the identifier is persisted under.
const StorageKey = "deviceId"

// Prefix starts every generated identifier.
const Prefix = "device_"

const (
	randomLength = 9
	alphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// ErrNoStorage is returned by Lookup when the provider has no durable storage.
var ErrNoStorage = errors.New("no durable storage available")

// Storage persists the identifier. GetOrCreate must be atomic per key: when
// several callers race, all of them observe the same stored value.
type Storage interface {
	GetOrCreate(key string, create func() string) (string, error)
}

// Provider hands out the device identifier.
type Provider struct {
	storage Storage
	now     func() time.Time
	random  func(n int) int

	mu     sync.Mutex
	cached string
}

// New returns a provider backed by storage. A nil storage means the current
// execution context has nowhere durable to keep the identifier; ID then
// returns an empty string.
func New(storage Storage) *Provider {
	return &Provider{
		storage: storage,
		now:     time.Now,
		random:  rand.IntN,
	}
}

// ID returns the device identifier, generating and persisting it on first
// use. It returns "" when no storage is available or the storage fails.
func (p *Provider) ID() string {
	id, err := p.Lookup()
	if err != nil {
		return ""
	}
	return id
}

// Lookup is ID with the storage error reported.
func (p *Provider) Lookup() (string, error) {
	if p == nil || p.storage == nil {
		return "", ErrNoStorage
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != "" {
		return p.cached, nil
	}

	id, err := p.storage.GetOrCreate(StorageKey, p.generate)
	if err != nil {
		return "", err
	}
	p.cached = id
	return id, nil
}

func (p *Provider) generate() string {
	return Generate(p.now(), p.random)
}

// Generate builds an identifier: Prefix, nine random base-36 characters, and
// the base-36 millisecond timestamp. random(n) must return a value in [0, n).
func Generate(now time.Time, random func(n int) int) string {
	buf := make([]byte, 0, len(Prefix)+randomLength+9)
	buf = append(buf, Prefix...)
	for range randomLength {
		buf = append(buf, alphabet[random(len(alphabet))])
	}
	buf = strconv.AppendInt(buf, now.UnixMilli(), 36)
	return string(buf)
}

// MemoryStorage keeps values in process memory.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStorage returns an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// GetOrCreate implements Storage.
func (m *MemoryStorage) GetOrCreate(key string, create func() string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if value, ok := m.values[key]; ok && value != "" {
		return value, nil
	}
	value := create()
	m.values[key] = value
	return value, nil
}

// Get returns the stored value for key.
func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.values[key]
	return value, ok
}
