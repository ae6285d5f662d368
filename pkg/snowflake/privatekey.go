package snowflake

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"regexp"
	"strings"

	"github.com/youmark/pkcs8"
)

// pemPattern splits a PEM blob into its dashed header line, body, and dashed
// footer line.
var pemPattern = regexp.MustCompile(`(-+[^-]+-+)([^-]+)(-+[^-]+-+)`)

// NormalizePrivateKey converts a PEM private key into the unencrypted
// DER/PKCS8 bytes expected by the Snowflake driver. Keys arriving from
// upstream config stores sometimes have the body line breaks collapsed,
// which strict PEM decoding rejects; the key is reassembled line by line
// before parsing. A passphrase that is empty or whitespace-only is treated
// as absent.
func NormalizePrivateKey(privateKey []byte, passphrase string) ([]byte, error) {
	reassembled, err := reassemblePEM(string(privateKey))
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode([]byte(reassembled))
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	key, err := parseKeyBlock(block, normalizePassphrase(passphrase))
	if err != nil {
		return nil, err
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize private key: %w", err)
	}

	return der, nil
}

// reassemblePEM splits the key into header, body, and footer, discards all
// whitespace inside the body, and rejoins the parts one per line.
func reassemblePEM(privateKey string) (string, error) {
	parts := pemPattern.FindStringSubmatch(privateKey)
	if parts == nil {
		return "", fmt.Errorf("private key does not match the expected PEM structure")
	}

	lines := []string{parts[1]}
	lines = append(lines, strings.Fields(parts[2])...)
	lines = append(lines, parts[3])

	return strings.Join(lines, "\n") + "\n", nil
}

func normalizePassphrase(passphrase string) []byte {
	if strings.TrimSpace(passphrase) == "" {
		return nil
	}

	return []byte(passphrase)
}

func parseKeyBlock(block *pem.Block, passphrase []byte) (any, error) {
	switch block.Type {
	case "ENCRYPTED PRIVATE KEY":
		if passphrase == nil {
			return nil, fmt.Errorf("private key is encrypted but no passphrase was provided")
		}
		key, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, passphrase)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt PKCS8 private key: %w", err)
		}
		return key, nil
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PKCS8 private key: %w", err)
		}
		return key, nil
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA private key: %w", err)
		}
		return key, nil
	case "EC PRIVATE KEY":
		key, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse EC private key: %w", err)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("unsupported private key type: %s", block.Type)
	}
}
