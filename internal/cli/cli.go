package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/trane-courses/internal/app"
)

// Exit codes returned by the process.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	command := app.CommandBuild
	if len(args) > 0 && (args[0] == app.CommandBuild || args[0] == app.CommandGenerate) {
		command = args[0]
		args = args[1:]
	}

	flagSet := flag.NewFlagSet("coursebuild", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
coursebuild - Validate and package course libraries for the Trane learning engine.

Usage:
  coursebuild [build] [options] [COURSES_PATH]
  coursebuild generate [options] [COURSES_PATH]

Commands:
  build      Validate COURSES_PATH and write the normalized library to the
             output directory (default).
  generate   Write the generated music courses into COURSES_PATH.

Arguments:
  COURSES_PATH
    Directory holding the course library (default "courses").

Options:
`)
		flagSet.PrintDefaults()
		fmt.Fprintf(output, "\nEvery option can also be set in %s.yaml or with %s_* environment variables.\n",
			app.DefaultConfigName, app.EnvPrefix)
	}

	coursesFlag := flagSet.String("courses", "", "Path to the course library directory.")
	cFlag := flagSet.String("c", "", "Path to the course library directory (shorthand).")
	outFlag := flagSet.String("out", "", "Output directory for the built library. Replaced on every successful build.")
	oFlag := flagSet.String("o", "", "Output directory for the built library (shorthand).")
	configFlag := flagSet.String("config", "", "Path to a config file. Defaults to ./coursebuild.yaml when present.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	reportFormatFlag := flagSet.String("report-format", "text", "Build report format. Options: 'text' or 'json'.")
	allowExternalFlag := flagSet.Bool("allow-external-deps", false, "Accept course dependencies on courses outside the library.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("unexpected arguments: %v", flagSet.Args()[1:])}
	}
	slog.Debug("Arguments parsed successfully.", "command", command)

	// Only flags given on the command line override the config file and the
	// environment.
	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if (set["courses"] || set["c"]) && flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf(
			"courses path given twice: flag %q and argument %q", coursesPathFlag(set, *coursesFlag, *cFlag), flagSet.Arg(0))}
	}

	overrides := make(map[string]any)
	switch {
	case set["courses"]:
		overrides["courses_path"] = *coursesFlag
	case set["c"]:
		overrides["courses_path"] = *cFlag
	case flagSet.NArg() > 0:
		overrides["courses_path"] = flagSet.Arg(0)
	}
	switch {
	case set["out"]:
		overrides["out_path"] = *outFlag
	case set["o"]:
		overrides["out_path"] = *oFlag
	}
	if set["log-format"] {
		overrides["log_format"] = *logFormatFlag
	}
	if set["log-level"] {
		overrides["log_level"] = *logLevelFlag
	}
	if set["report-format"] {
		overrides["report_format"] = *reportFormatFlag
	}
	if set["allow-external-deps"] {
		overrides["allow_external_dependencies"] = *allowExternalFlag
	}
	slog.Debug("CLI overrides collected.", "overrides", overrides)

	config, err := app.LoadConfig(command, *configFlag, overrides)
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func coursesPathFlag(set map[string]bool, long, short string) string {
	if set["courses"] {
		return long
	}
	return short
}
