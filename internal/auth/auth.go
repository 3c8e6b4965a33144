// Package auth bootstraps the engine's own `user` table and gates
// interactive sessions behind a username/password check, modeled on the
// predecessor's getUserInfo/createUser flow but hashing credentials
// instead of storing them in the clear.
package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"minisql/internal/catalog"
	"minisql/internal/engine"
	"minisql/internal/lexer"
	"minisql/internal/parser"
)

const userTableSQL = "CREATE TABLE user (id integer primary key, username varchar unique, password varchar, created datetime default now);"

// ErrInvalidCredentials is returned by Login when the username is
// unknown or the password does not match its stored hash.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Bootstrap ensures the `user` table exists, creating it (and prompting
// for the first account via CreateUser) the first time a data directory
// is used. in is the shared *bufio.Reader the caller also drives its
// statement shell from, so no input bytes are stranded in a second
// buffer.
func Bootstrap(dir string, cat *catalog.Catalog, in *bufio.Reader, out io.Writer) error {
	if cat.Exists("user") {
		return nil
	}

	toks, err := lexer.Lex(userTableSQL)
	if err != nil {
		return fmt.Errorf("lex user table schema: %w", err)
	}
	node, err := parser.Parse(toks, userTableSQL)
	if err != nil || node.IsInvalid {
		return fmt.Errorf("parse user table schema: %w", err)
	}

	op := engine.CreateTable(dir, node, cat)
	if op.Code != engine.Success {
		return fmt.Errorf("create user table: %s", op.Error)
	}

	fmt.Fprintln(out, "No accounts exist yet; create the first one.")
	return CreateUser(dir, cat, in, out)
}

// CreateUser interactively prompts for a new username/password, hashes
// the password with bcrypt, and inserts the account into the `user`
// table.
func CreateUser(dir string, cat *catalog.Catalog, in *bufio.Reader, out io.Writer) error {
	username, err := prompt(in, out, "Enter username: ")
	if err != nil {
		return err
	}
	if err := validateCredentialField(username); err != nil {
		return err
	}

	password, err := prompt(in, out, "Enter password: ")
	if err != nil {
		return err
	}
	confirm, err := prompt(in, out, "Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	sql := fmt.Sprintf("INSERT INTO user (username, password) VALUES ('%s', '%s');", username, string(hash))
	toks, err := lexer.Lex(sql)
	if err != nil {
		return fmt.Errorf("lex insert: %w", err)
	}
	node, err := parser.Parse(toks, sql)
	if err != nil || node.IsInvalid {
		return fmt.Errorf("parse insert: %w", err)
	}

	op := engine.Insert(dir, node, cat)
	if op.Code != engine.Success {
		return errors.New(op.Error)
	}
	fmt.Fprintf(out, "Account `%s` created.\n", username)
	return nil
}

// Login prompts for a username/password and verifies it against the
// `user` table's stored bcrypt hash.
func Login(dir string, cat *catalog.Catalog, in *bufio.Reader, out io.Writer) error {
	username, err := prompt(in, out, "Username: ")
	if err != nil {
		return err
	}
	password, err := prompt(in, out, "Password: ")
	if err != nil {
		return err
	}

	sql := fmt.Sprintf("SELECT username, password FROM user WHERE username = '%s';", username)
	toks, err := lexer.Lex(sql)
	if err != nil {
		return fmt.Errorf("lex select: %w", err)
	}
	node, err := parser.Parse(toks, sql)
	if err != nil || node.IsInvalid {
		return fmt.Errorf("parse select: %w", err)
	}

	op := engine.Select(dir, node, cat)
	if op.Code != engine.Success || op.RowCount == 0 {
		return ErrInvalidCredentials
	}

	fields := strings.SplitN(op.Rows[0], ",", -1)
	// Rows[0] is the raw stored line: tombstone,id,username,password,created
	if len(fields) < 4 {
		return ErrInvalidCredentials
	}
	hash := fields[3]

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	fmt.Fprintf(out, "Welcome, %s.\n", username)
	return nil
}

func prompt(r *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, " \t\r\n"), nil
}

func validateCredentialField(s string) error {
	if s == "" {
		return errors.New("field cannot be empty")
	}
	if strings.ContainsAny(s, "',;") {
		return errors.New("field cannot contain a quote, comma, or semicolon")
	}
	return nil
}
