package db

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"
)

// ResolvePassword determines the postgres password with the following
// precedence: the configured value, the PGPASSWORD environment
// variable, then an interactive hidden prompt.
func ResolvePassword(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if pw, ok := os.LookupEnv("PGPASSWORD"); ok {
		return pw, nil
	}
	return promptForPassword()
}

// promptForPassword reads a password from the terminal with echo off.
// It runs before the TUI starts, so writing to stderr is safe.
func promptForPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(passwordBytes), nil
}
