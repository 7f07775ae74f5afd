package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/mattn/go-isatty"
)

// UserConfirmedDeletion asks the user to confirm the deletion of the VPC and its resources.
// With force, no question is asked.
func UserConfirmedDeletion(r io.Reader, force bool) bool {
	if force {
		return true
	}

	log.Info("Are you sure you want to delete the VPC and all its resources (cannot be undone)? " +
		"Only YES will be accepted.")
	fmt.Printf("%23v", "Enter a value: ")

	var response string

	_, err := fmt.Fscanln(r, &response)
	if err != nil {
		log.WithError(err).Debug("failed to read confirmation")
		return false
	}

	return response == "YES"
}

// IsTerminal reports whether f is an interactive terminal, i.e. whether somebody
// can answer the confirmation prompt.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
