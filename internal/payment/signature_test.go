package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	body := []byte(`{"meta":{"event_name":"subscription_created"}}`)
	secret := "whsec-test"

	if !VerifySignature(body, sign(body, secret), secret) {
		t.Fatal("expected valid signature to verify")
	}
}

func TestVerifySignature_Mismatch(t *testing.T) {
	body := []byte(`{"meta":{"event_name":"subscription_created"}}`)

	if VerifySignature(body, sign(body, "other-secret"), "whsec-test") {
		t.Fatal("expected signature from a different secret to fail")
	}
	if VerifySignature([]byte("tampered"), sign(body, "whsec-test"), "whsec-test") {
		t.Fatal("expected tampered body to fail")
	}
}

func TestVerifySignature_MissingInputs(t *testing.T) {
	body := []byte("payload")

	if VerifySignature(body, "", "whsec-test") {
		t.Fatal("expected empty signature to fail")
	}
	if VerifySignature(body, sign(body, "whsec-test"), "") {
		t.Fatal("expected empty secret to fail")
	}
}
