// Command hash-generator prints bcrypt hashes for the passwords given as
// arguments, for seeding development databases by hand. Passwords are
// checked against the registration policy first so a seeded account cannot
// hold a password the API would reject.
package main

import (
	"fmt"
	"os"

	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/service/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s password [password ...]\n", os.Args[0])
		os.Exit(2)
	}

	hasher := auth.NewBcryptVerifier()

	exitCode := 0
	for _, password := range os.Args[1:] {
		if err := domain.ValidatePassword(password); err != nil {
			fmt.Fprintf(os.Stderr, "rejected %q: %v\n", password, err)
			exitCode = 1
			continue
		}

		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to hash %q: %v\n", password, err)
			exitCode = 1
			continue
		}
		fmt.Printf("%s\n", hash)
	}

	os.Exit(exitCode)
}
