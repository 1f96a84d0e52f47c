package colors

import "github.com/fatih/color"

// Colors are disabled automatically when stdout is not a terminal (see
// color.NoColor), so these are safe to use in output that may be piped.
var (
	CliCmdC    = color.New(color.FgMagenta)
	SuccessC   = color.New(color.FgGreen)
	WarningC   = color.New(color.FgYellow)
	FailureC   = color.New(color.FgRed)
	UserInputC = color.New(color.FgCyan)
	FaintC     = color.New(color.Faint)
)

var (
	CliCmd    = CliCmdC.Sprint
	Success   = SuccessC.Sprint
	Warning   = WarningC.Sprint
	Failure   = FailureC.Sprint
	UserInput = UserInputC.Sprint
	Faint     = FaintC.Sprint
)
