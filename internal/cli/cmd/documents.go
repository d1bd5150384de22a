package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/bnema/dockyard/internal/cli"
	"github.com/bnema/dockyard/internal/domain/entity"
)

// readDocument returns a layout document from a file argument, stdin ("-")
// or the stored layout of a session, and a name describing where it came from.
func readDocument(a *cli.App, args []string, session string) ([]byte, string, error) {
	switch {
	case session != "" && len(args) > 0:
		return nil, "", fmt.Errorf("give either a file or --session, not both")
	case session != "":
		out, err := a.LoadLayoutUC.Execute(a.Ctx(), entity.SessionID(session))
		if err != nil {
			return nil, "", err
		}
		return out.Record.Document, "session " + session, nil
	case len(args) == 0 || args[0] == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "stdin", nil
	default:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, "", fmt.Errorf("read layout: %w", err)
		}
		return data, args[0], nil
	}
}
