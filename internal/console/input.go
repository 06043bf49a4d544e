package console

import "golang.org/x/term"

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// IsTerminal reports whether fd is an interactive terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}
