package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// promptForKey reads the key twice without echo and checks that both entries match.
// The key itself never appears in error messages.
func promptForKey() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("-prompt requires an interactive terminal")
	}

	fmt.Fprint(os.Stderr, "Enter key: ")
	k1, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read key")
	}

	fmt.Fprint(os.Stderr, "Re-enter key: ")
	k2, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read key")
	}

	if string(k1) != string(k2) {
		return "", errors.New("keys do not match")
	}
	return string(k1), nil
}
