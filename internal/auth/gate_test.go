package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestGateAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rotator"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	tests := []struct {
		name      string
		secret    string
		candidate string
		expected  bool
	}{
		{name: "plain match", secret: "wrecker", candidate: "wrecker", expected: true},
		{name: "plain mismatch", secret: "wrecker", candidate: "Wrecker", expected: false},
		{name: "empty candidate", secret: "wrecker", candidate: "", expected: false},
		{name: "default secret", secret: "", candidate: DefaultSecret, expected: true},
		{name: "default secret rejects empty", secret: "", candidate: "", expected: false},
		{name: "bcrypt match", secret: string(hash), candidate: "rotator", expected: true},
		{name: "bcrypt mismatch", secret: string(hash), candidate: "flatbed", expected: false},
		{name: "bcrypt hash itself is not the password", secret: string(hash), candidate: string(hash), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewGate(tt.secret)
			if got := gate.Authenticate(tt.candidate); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestIsBcrypt(t *testing.T) {
	if isBcrypt("$2a$short") {
		t.Error("Expected short string not to be treated as bcrypt hash")
	}
	if isBcrypt(DefaultSecret) {
		t.Error("Expected default secret not to be treated as bcrypt hash")
	}
}
