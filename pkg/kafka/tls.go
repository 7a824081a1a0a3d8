package kafka

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/youmark/pkcs8"
)

var (
	ErrNoCertificate = errors.New("no certificate found")
	ErrNoPrivateKey  = errors.New("no private key found")
	ErrNoCA          = errors.New("no CA certificate found")
)

// TLSFiles points at the PEM files of a client identity for mutual TLS.
type TLSFiles struct {
	CertFile    string
	KeyFile     string
	CAFile      string
	KeyPassword string // decrypts KeyFile, empty for a plain key
}

// NewTLSConfig loads the client certificate chain, its private key (optionally
// encrypted) and the CA bundle used to verify the brokers.
func NewTLSConfig(files TLSFiles) (*tls.Config, error) {
	certPEM, err := os.ReadFile(files.CertFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read client certificate: %w", err)
	}

	keyPEM, err := os.ReadFile(files.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read client key: %w", err)
	}

	caPEM, err := os.ReadFile(files.CAFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate: %w", err)
	}

	cert, err := loadKeyPair(certPEM, keyPEM, files.KeyPassword)
	if err != nil {
		return nil, err
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("%w in %s", ErrNoCA, files.CAFile)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}

func loadKeyPair(certPEM, keyPEM []byte, password string) (tls.Certificate, error) {
	if !containsBlock(certPEM, "CERTIFICATE") {
		return tls.Certificate{}, ErrNoCertificate
	}

	key, err := decodePrivateKey(keyPEM, password)
	if err != nil {
		return tls.Certificate{}, err
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to re-encode private key: %w", err)
	}

	// X509KeyPair checks that the key belongs to the leaf certificate
	cert, err := tls.X509KeyPair(certPEM, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to load client key pair: %w", err)
	}

	return cert, nil
}

func decodePrivateKey(keyPEM []byte, password string) (any, error) {
	rest := keyPEM

	for {
		var block *pem.Block

		block, rest = pem.Decode(rest)
		if block == nil {
			return nil, ErrNoPrivateKey
		}

		if !strings.HasSuffix(block.Type, "PRIVATE KEY") {
			continue
		}

		switch {
		case block.Type == "ENCRYPTED PRIVATE KEY":
			key, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, []byte(password))
			if err != nil {
				return nil, fmt.Errorf("failed to decrypt PKCS#8 private key: %w", err)
			}

			return key, nil
		case x509.IsEncryptedPEMBlock(block): //nolint:staticcheck
			der, err := x509.DecryptPEMBlock(block, []byte(password)) //nolint:staticcheck
			if err != nil {
				return nil, fmt.Errorf("failed to decrypt private key: %w", err)
			}

			return parsePrivateKey(der)
		default:
			return parsePrivateKey(block.Bytes)
		}
	}
}

func parsePrivateKey(der []byte) (any, error) {
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		return key, nil
	}

	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}

	key, err := x509.ParseECPrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("unsupported private key format: %w", err)
	}

	return key, nil
}

func containsBlock(data []byte, blockType string) bool {
	for {
		var block *pem.Block

		block, data = pem.Decode(data)
		if block == nil {
			return false
		}

		if block.Type == blockType {
			return true
		}
	}
}
