package main

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/sitemigrate/cmd/sitemigrate/commands"
	"git.home.luguber.info/inful/sitemigrate/internal/foundation/errors"
	"git.home.luguber.info/inful/sitemigrate/internal/logfields"
	"git.home.luguber.info/inful/sitemigrate/internal/version"
)

func main() {
	// SITEMIGRATE_* variables may come from a .env file next to the site.
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("sitemigrate"),
		kong.Description("Move flat HTML pages into folder-per-page layout and rewrite the links between them."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	runID := uuid.NewString()
	global := &commands.Global{
		Logger: slog.Default().With(logfields.RunID(runID)),
		RunID:  runID,
		Stdout: os.Stdout,
	}

	err := parser.Run(global, cli)
	errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
}
