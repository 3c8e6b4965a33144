package auth

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"minisql/internal/catalog"
)

func setupAccount(t *testing.T, username, password string) (string, *catalog.Catalog) {
	t.Helper()
	dir := t.TempDir()
	cat, err := catalog.New(dir, nil)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}

	in := bufio.NewReader(strings.NewReader(username + "\n" + password + "\n" + password + "\n"))
	out := &bytes.Buffer{}
	if err := Bootstrap(dir, cat, in, out); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if !strings.Contains(out.String(), "created") {
		t.Fatalf("expected account-created message, got: %s", out.String())
	}
	return dir, cat
}

func TestBootstrapCreatesUserTableAndFirstAccount(t *testing.T) {
	dir, cat := setupAccount(t, "alice", "secret")

	if !cat.Exists("user") {
		t.Fatal("expected `user` table to exist after Bootstrap")
	}

	// A second Bootstrap call on the same directory is a no-op: the
	// table already exists, so no new prompt is issued.
	out := &bytes.Buffer{}
	if err := Bootstrap(dir, cat, bufio.NewReader(strings.NewReader("")), out); err != nil {
		t.Fatalf("second Bootstrap: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output from a no-op Bootstrap, got: %s", out.String())
	}
}

func TestLoginSucceedsWithCorrectPassword(t *testing.T) {
	dir, cat := setupAccount(t, "alice", "secret")

	out := &bytes.Buffer{}
	in := bufio.NewReader(strings.NewReader("alice\nsecret\n"))
	if err := Login(dir, cat, in, out); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !strings.Contains(out.String(), "Welcome, alice") {
		t.Errorf("expected a welcome message, got: %s", out.String())
	}
}

func TestLoginFailsWithWrongPassword(t *testing.T) {
	dir, cat := setupAccount(t, "alice", "secret")

	in := bufio.NewReader(strings.NewReader("alice\nwrong-password\n"))
	err := Login(dir, cat, in, &bytes.Buffer{})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestLoginFailsWithUnknownUsername(t *testing.T) {
	dir, cat := setupAccount(t, "alice", "secret")

	in := bufio.NewReader(strings.NewReader("nobody\nwhatever\n"))
	err := Login(dir, cat, in, &bytes.Buffer{})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestCreateUserRejectsPasswordMismatch(t *testing.T) {
	dir := t.TempDir()
	cat, err := catalog.New(dir, nil)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}

	in := bufio.NewReader(strings.NewReader("bob\nsecret\nother\n"))
	out := &bytes.Buffer{}
	if err := Bootstrap(dir, cat, in, out); err == nil {
		t.Fatal("expected an error for mismatched passwords")
	} else if !strings.Contains(err.Error(), "do not match") {
		t.Fatalf("expected a password-mismatch error, got: %v", err)
	}
}

func TestCreateUserRejectsEmptyUsername(t *testing.T) {
	dir := t.TempDir()
	cat, err := catalog.New(dir, nil)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}

	in := bufio.NewReader(strings.NewReader("\nsecret\nsecret\n"))
	out := &bytes.Buffer{}
	if err := Bootstrap(dir, cat, in, out); err == nil {
		t.Fatal("expected an error for an empty username")
	}
}
