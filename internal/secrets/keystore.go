// Package secrets keeps outreach credentials (SMTP password, Twilio token) in
// a passphrase-sealed file so they need not live in fair.toml or the shell
// history.
package secrets

import (
	"encoding/json"
	"errors"
	"os"
	"sort"
	"sync"

	"edufair/internal/domain"
	"edufair/internal/util/atomicfile"
	"edufair/internal/util/memzero"
)

// Keystore is a sealed key/value file.
type Keystore struct {
	path       string
	passphrase string
	kdf        kdfParams

	mu sync.Mutex
}

// Open returns a keystore at path. The file is created on first Set.
func Open(path, passphrase string) (*Keystore, error) {
	if passphrase == "" {
		return nil, errors.New("keystore passphrase required")
	}
	return &Keystore{path: path, passphrase: passphrase, kdf: defaultKDF()}, nil
}

// Get returns the value for key and whether it was present.
func (k *Keystore) Get(key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, err := k.load()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

// Set stores value under key, replacing any previous value.
func (k *Keystore) Set(key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, err := k.load()
	if err != nil {
		return err
	}
	m[key] = value
	return k.save(m)
}

// Delete removes key. Removing an absent key is not an error.
func (k *Keystore) Delete(key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, err := k.load()
	if err != nil {
		return err
	}
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return k.save(m)
}

// Keys lists stored keys in order.
func (k *Keystore) Keys() ([]string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, err := k.load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (k *Keystore) load() (map[string]string, error) {
	m := make(map[string]string)
	b, err := atomicfile.Read(k.path)
	if err != nil || b == nil {
		return m, err
	}
	raw, err := open(k.passphrase, b)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(raw)
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (k *Keystore) save(m map[string]string) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)
	b, err := seal(k.passphrase, raw, k.kdf)
	if err != nil {
		return err
	}
	return atomicfile.Write(k.path, b, 0o600)
}

// Exists reports whether a keystore file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var _ domain.SecretStore = (*Keystore)(nil)
