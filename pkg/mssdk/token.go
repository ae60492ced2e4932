package mssdk

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const keyringService = "metashare"

// TokenStore persists a token pair per API base URL.
type TokenStore interface {
	Save(baseURL, access, refresh string) error
	Load(baseURL string) (access, refresh string)
	Delete(baseURL string) error
}

// KeyringStore keeps tokens in the OS keyring.
type KeyringStore struct{}

var _ TokenStore = KeyringStore{}

// normalizeKey makes https://example.com/ and https://EXAMPLE.com share an
// entry.
func normalizeKey(baseURL string) string {
	s := strings.TrimSpace(baseURL)
	s = strings.TrimRight(s, "/")
	return strings.ToLower(s)
}

func refreshKey(baseURL string) string {
	return normalizeKey(baseURL) + "#refresh"
}

func (KeyringStore) Save(baseURL, access, refresh string) error {
	if err := keyring.Set(keyringService, normalizeKey(baseURL), access); err != nil {
		return err
	}
	if refresh == "" {
		return nil
	}
	return keyring.Set(keyringService, refreshKey(baseURL), refresh)
}

// Load returns empty strings for missing entries.
func (KeyringStore) Load(baseURL string) (string, string) {
	access, _ := keyring.Get(keyringService, normalizeKey(baseURL))
	refresh, _ := keyring.Get(keyringService, refreshKey(baseURL))
	return access, refresh
}

func (KeyringStore) Delete(baseURL string) error {
	errAccess := keyring.Delete(keyringService, normalizeKey(baseURL))
	errRefresh := keyring.Delete(keyringService, refreshKey(baseURL))
	if errors.Is(errAccess, keyring.ErrNotFound) {
		errAccess = nil
	}
	if errors.Is(errRefresh, keyring.ErrNotFound) {
		errRefresh = nil
	}
	return errors.Join(errAccess, errRefresh)
}
