package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tourflow/internal/app"
	"tourflow/internal/domain"
)

func TestRegisterLoginAuthenticate_RoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc := app.NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	u, err := svc.Register(ctx, app.RegisterInput{
		Email:    "nina@x.dev",
		Username: "nina",
		Password: "hunter22",
		FullName: ptr("Nina Costa"),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !u.IsActive || u.IsAdmin || u.IsOperator {
		t.Fatalf("unexpected flags on new user: %+v", u)
	}
	if u.PasswordHash == "hunter22" {
		t.Fatal("password stored in clear")
	}

	token, logged, err := svc.Login(ctx, "nina@x.dev", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != u.ID || token == "" {
		t.Fatalf("unexpected login result: %+v", logged)
	}

	got, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("token resolved to user %d, want %d", got.ID, u.ID)
	}
}

func TestRegister_Conflicts(t *testing.T) {
	repo := newFakeRepo()
	svc := app.NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, app.RegisterInput{Email: "a@x.dev", Username: "alpha", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Register(ctx, app.RegisterInput{Email: "a@x.dev", Username: "beta", Password: "secret1"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate email: err = %v, want conflict", err)
	}
	if _, err := svc.Register(ctx, app.RegisterInput{Email: "b@x.dev", Username: "alpha", Password: "secret1"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate username: err = %v, want conflict", err)
	}
	if _, err := svc.Register(ctx, app.RegisterInput{Email: "no-at-sign", Username: "gamma", Password: "secret1"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad email: err = %v, want validation error", err)
	}
	if _, err := svc.Register(ctx, app.RegisterInput{Email: "c@x.dev", Username: "dl", Password: "secret1"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("short username: err = %v, want validation error", err)
	}
	if _, err := svc.Register(ctx, app.RegisterInput{Email: "d@x.dev", Username: "delta", Password: "short"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("short password: err = %v, want validation error", err)
	}
}

func TestLogin_Failures(t *testing.T) {
	repo := newFakeRepo()
	svc := app.NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	u, err := svc.Register(ctx, app.RegisterInput{Email: "lu@x.dev", Username: "lucia", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := svc.Login(ctx, "lu@x.dev", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("wrong password: err = %v, want unauthorized", err)
	}
	if _, _, err := svc.Login(ctx, "ghost@x.dev", "secret1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("unknown email: err = %v, want unauthorized", err)
	}

	// deactivated accounts cannot log in or use existing tokens
	token, _, err := svc.Login(ctx, "lu@x.dev", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	stored := repo.users[u.ID]
	stored.IsActive = false
	repo.users[u.ID] = stored

	if _, _, err := svc.Login(ctx, "lu@x.dev", "secret1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("inactive login: err = %v, want unauthorized", err)
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("inactive token: err = %v, want unauthorized", err)
	}
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	repo := newFakeRepo()
	svc := app.NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Authenticate(ctx, "not-a-jwt"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("garbage token: err = %v, want unauthorized", err)
	}

	// token signed with a different secret
	other := app.NewAuthService(repo, "other-secret", time.Hour)
	if _, err := other.Register(ctx, app.RegisterInput{Email: "z@x.dev", Username: "zelda", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}
	token, _, err := other.Login(ctx, "z@x.dev", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("foreign signature: err = %v, want unauthorized", err)
	}

	// expired token
	expired := app.NewAuthService(repo, "test-secret", -time.Minute)
	token, _, err = expired.Login(ctx, "z@x.dev", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expired token: err = %v, want unauthorized", err)
	}
}
