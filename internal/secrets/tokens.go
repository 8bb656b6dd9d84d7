package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups the engine's secrets in the OS keychain.
const KeyringService = "bazaar-engine"

// Store hands out per-source API bearer tokens. It satisfies
// source.TokenSource.
type Store struct{}

func account(sourceName string) string {
	return "bazaar:source:" + strings.TrimSpace(sourceName)
}

func (Store) Token(sourceName string) (string, error) {
	if strings.TrimSpace(sourceName) == "" {
		return "", errors.New("source name is empty")
	}
	tok, err := keyring.Get(KeyringService, account(sourceName))
	if err != nil || strings.TrimSpace(tok) == "" {
		return "", errors.New("access token not found for source " + sourceName)
	}
	return tok, nil
}

func (Store) SetToken(sourceName, token string) error {
	if strings.TrimSpace(sourceName) == "" {
		return errors.New("source name is empty")
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, account(sourceName), token)
}

func (Store) DeleteToken(sourceName string) error {
	if strings.TrimSpace(sourceName) == "" {
		return errors.New("source name is empty")
	}
	return keyring.Delete(KeyringService, account(sourceName))
}
