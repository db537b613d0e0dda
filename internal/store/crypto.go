package store

import (
	"crypto/rand"
	"fmt"
	"os"

	"golang.org/x/crypto/nacl/secretbox"
)

// sealBox seals small secrets with a machine-local key so the credential
// never sits on disk in the clear. The key file lives next to the database
// with owner-only permissions.
type sealBox struct {
	key [32]byte
}

func openSealBox(keyPath string) (*sealBox, error) {
	b := &sealBox{}

	raw, err := os.ReadFile(keyPath)
	if err == nil {
		if len(raw) != 32 {
			return nil, fmt.Errorf("sealing key %s is corrupt", keyPath)
		}
		copy(b.key[:], raw)
		return b, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	// First use: generate and persist a fresh key.
	if _, err := rand.Read(b.key[:]); err != nil {
		return nil, err
	}
	if err := os.WriteFile(keyPath, b.key[:], 0o600); err != nil {
		return nil, fmt.Errorf("failed to write sealing key: %v", err)
	}
	return b, nil
}

func (b *sealBox) seal(plain []byte) ([]byte, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], plain, &nonce, &b.key), nil
}

func (b *sealBox) open(sealed []byte) ([]byte, error) {
	if len(sealed) < 24 {
		return nil, fmt.Errorf("sealed value too short")
	}
	var nonce [24]byte
	copy(nonce[:], sealed[:24])
	plain, ok := secretbox.Open(nil, sealed[24:], &nonce, &b.key)
	if !ok {
		return nil, fmt.Errorf("failed to unseal value")
	}
	return plain, nil
}
