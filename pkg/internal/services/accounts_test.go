package services

import (
	"context"
	"errors"
	"testing"

	"github.com/voxpop-app/voxpop/pkg/internal/testutil"
)

func TestAuthRoundtrip(t *testing.T) {
	svc := NewAuthService(testutil.NewMemoryAccountStore(), "test-secret")
	ctx := context.Background()

	account, err := svc.Register(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if account.ID == 0 {
		t.Error("registered account has no id")
	}
	if account.Password == "hunter22" {
		t.Error("password stored in plain text")
	}

	if _, err := svc.Register(ctx, "alice", "other"); !errors.Is(err, ErrNameTaken) {
		t.Errorf("duplicate name: got %v, want %v", err, ErrNameTaken)
	}

	token, err := svc.Login(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	resolved, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if resolved.ID != account.ID || resolved.Name != "alice" {
		t.Errorf("resolved wrong account: %+v", resolved)
	}
}

func TestAuthRejections(t *testing.T) {
	svc := NewAuthService(testutil.NewMemoryAccountStore(), "test-secret")
	ctx := context.Background()

	if _, err := svc.Register(ctx, "bob", "hunter22"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login(ctx, "bob", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong password: got %v, want %v", err, ErrBadCredentials)
	}
	if _, err := svc.Login(ctx, "nobody", "hunter22"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("unknown name: got %v, want %v", err, ErrBadCredentials)
	}
	if _, err := svc.Authenticate(ctx, "not-a-token"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("garbage token: got %v, want %v", err, ErrUnauthenticated)
	}

	// Tokens minted under a different secret must not resolve.
	other := NewAuthService(testutil.NewMemoryAccountStore(), "other-secret")
	if _, err := other.Register(ctx, "bob", "hunter22"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := other.Login(ctx, "bob", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("foreign token: got %v, want %v", err, ErrUnauthenticated)
	}
}
