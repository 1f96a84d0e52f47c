package uiutils

import (
	"os"

	"emperror.dev/errors"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned by Confirm when there is no terminal to ask on.
var ErrNotInteractive = errors.Sentinel("cannot ask for confirmation: not running in a terminal")

// Confirm asks a yes/no question on the terminal. The answer defaults to no.
func Confirm(question string) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return false, ErrNotInteractive
	}
	ok, err := confirmation.New(question, confirmation.No).RunPrompt()
	if err != nil {
		return false, errors.Wrap(err, "failed to read confirmation")
	}
	return ok, nil
}
