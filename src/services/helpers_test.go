package services

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func testHasher() *BcryptHasher {
	return NewBcryptHasher(bcrypt.MinCost)
}

func assertKind(t *testing.T, err error, kind error, message string) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ServiceError, got %T", err)
	}
	if message != "" && se.Message != message {
		t.Errorf("expected message %q, got %q", message, se.Message)
	}
}
