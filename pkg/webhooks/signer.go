package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
)

const signaturePrefix = "sha256="

// Signer computes HMAC-SHA256 signatures over webhook bodies.
type Signer struct {
	secretKey []byte
	logger    *slog.Logger
}

func NewSigner(secretKey string, logger *slog.Logger) *Signer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Signer{
		secretKey: []byte(secretKey),
		logger:    logger,
	}
}

// Sign returns the header value "sha256=<hex-hmac>" for data.
func (s *Signer) Sign(data []byte) string {
	mac := hmac.New(sha256.New, s.secretKey)
	mac.Write(data)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a header value produced by Sign.
func (s *Signer) Verify(data []byte, signature string) error {
	if !strings.HasPrefix(signature, signaturePrefix) {
		return fmt.Errorf("invalid signature format")
	}

	expected := s.Sign(data)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		s.logger.Warn("webhook signature verification failed")
		return fmt.Errorf("invalid signature")
	}

	return nil
}
