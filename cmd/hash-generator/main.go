// Command hash-generator produces a bcrypt hash for a password so an
// operator can seed an account directly in the database. Registration
// through the API always creates member accounts, so the first admin
// is bootstrapped by inserting a row with a hash minted here.
//
// Usage:
//
//	hash-generator [-cost N] <password>
//	echo -n 'password' | hash-generator [-cost N]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sarmadH97/keeyu-task-board/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor (4-31)")
	flag.Parse()

	password, err := readPassword(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(password) < 12 {
		fmt.Fprintln(os.Stderr, "Error: password must be at least 12 characters long")
		os.Exit(1)
	}
	if len(password) > 72 {
		fmt.Fprintln(os.Stderr, "Error: password must be at most 72 characters long")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(password, *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}

// readPassword takes the password from the first positional argument,
// falling back to the first line of stdin so the value stays out of
// shell history.
func readPassword(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("no password given: pass it as an argument or on stdin")
	}

	return strings.TrimRight(line, "\r\n"), nil
}
