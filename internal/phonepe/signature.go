package phonepe

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
)

// GenerateXVerify computes the X-VERIFY checksum PhonePe expects on every
// API call, plus the base64 payload the pay endpoint consumes.
//
// The payload is serialized to JSON, base64-encoded, then hashed as
// sha256(base64Payload + apiPath + saltKey). The gateway verifies the exact
// byte concatenation, so the order of the three parts is load-bearing.
// The salt index is appended after a literal "###" separator.
func GenerateXVerify(payload any, apiPath, saltKey, saltIndex string) (xVerify, base64Payload string, err error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", "", err
	}

	base64Payload = base64.StdEncoding.EncodeToString(raw)

	sum := sha256.Sum256([]byte(base64Payload + apiPath + saltKey))
	xVerify = hex.EncodeToString(sum[:]) + "###" + saltIndex

	return xVerify, base64Payload, nil
}
