package user

import (
	"context"
	"errors"
	"testing"
)

type fakeUserRepo struct {
	byID    map[string]*User
	byEmail map[string]*User

	created *User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*User{}, byEmail: map[string]*User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *User) error {
	f.created = u
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, userID string) (*User, error) {
	u, ok := f.byID[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func TestRegisterNormalizesEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	got, err := svc.Register(context.Background(), RegisterInput{
		Name:     "  Dana  ",
		Email:    "  Dana@Example.COM ",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Email != "dana@example.com" {
		t.Fatalf("expected lowercased email, got %q", got.Email)
	}
	if got.Name != "Dana" {
		t.Fatalf("expected trimmed name, got %q", got.Name)
	}
	if got.PasswordHash == "" || got.PasswordHash == "secret1" {
		t.Fatalf("expected hashed password, got %q", got.PasswordHash)
	}
}

func TestRegisterEmailTaken(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byEmail["dana@example.com"] = &User{ID: "u-1", Email: "dana@example.com"}
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Dana",
		Email:    "DANA@example.com",
		Password: "secret1",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	cases := []RegisterInput{
		{Name: "Dana", Email: "", Password: "secret1"},
		{Name: "", Email: "dana@example.com", Password: "secret1"},
		{Name: "   ", Email: "  ", Password: "secret1"},
	}
	for _, input := range cases {
		if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("expected ErrMissingFields for %+v, got %v", input, err)
		}
	}
}

func TestRegisterShortPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "12345",
	})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "secret1",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, err := svc.Authenticate(context.Background(), "Dana@Example.com", "secret1")
	if err != nil {
		t.Fatalf("expected successful login, got %v", err)
	}
	if got.Email != "dana@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := svc.Authenticate(context.Background(), "dana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
