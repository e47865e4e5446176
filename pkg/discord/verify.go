package discord

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
)

// Verify checks the signature of an interaction webhook request and returns
// its body.
func Verify(r *http.Request, key ed25519.PublicKey) ([]byte, error) {
	signature := r.Header.Get("X-Signature-Ed25519")
	if signature == "" {
		return nil, fmt.Errorf("signature can not empty")
	}

	sig, err := hex.DecodeString(signature)
	if err != nil {
		return nil, err
	}

	if len(sig) != ed25519.SignatureSize || sig[63]&224 != 0 {
		return nil, fmt.Errorf("signature is not valid")
	}

	timestamp := r.Header.Get("X-Signature-Timestamp")
	if timestamp == "" {
		return nil, fmt.Errorf("timestamp can not empty")
	}

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	message := append([]byte(timestamp), bodyBytes...)

	if !ed25519.Verify(key, message, sig) {
		return nil, fmt.Errorf("signature is not valid")
	}

	return bodyBytes, nil
}
