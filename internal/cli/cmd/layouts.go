package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/cli/styles"
	"github.com/bnema/dockyard/internal/domain/entity"
)

var (
	layoutsLimit int
	layoutsJSON  bool
	layoutsYes   bool
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "Manage stored layouts",
	Long: `List, show, import and delete the layouts stored per session.

Layouts are saved automatically by 'dockyard play' and through the HTTP API.`,
}

var layoutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored layouts",
	Args:  cobra.NoArgs,
	RunE:  runLayoutsList,
}

var layoutsShowCmd = &cobra.Command{
	Use:   "show <session>",
	Short: "Print the layout document of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutsShow,
}

var layoutsImportCmd = &cobra.Command{
	Use:   "import <session> [file|-]",
	Short: "Validate and store a layout document",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runLayoutsImport,
}

var layoutsDeleteCmd = &cobra.Command{
	Use:   "delete <session>",
	Short: "Delete the layout of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutsDelete,
}

func init() {
	rootCmd.AddCommand(layoutsCmd)
	layoutsCmd.AddCommand(layoutsListCmd, layoutsShowCmd, layoutsImportCmd, layoutsDeleteCmd)

	layoutsListCmd.Flags().IntVarP(&layoutsLimit, "limit", "n", 0, "show at most N layouts")
	layoutsListCmd.Flags().BoolVar(&layoutsJSON, "json", false, "output as JSON")
	layoutsDeleteCmd.Flags().BoolVarP(&layoutsYes, "yes", "y", false, "skip confirmation prompt")
}

func runLayoutsList(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	infos, err := a.ListLayoutsUC.Execute(a.Ctx(), layoutsLimit)
	if err != nil {
		return err
	}

	if layoutsJSON {
		type item struct {
			Session   string    `json:"session"`
			Size      int64     `json:"size"`
			UpdatedAt time.Time `json:"updated_at"`
		}
		out := make([]item, 0, len(infos))
		for _, info := range infos {
			out = append(out, item{Session: string(info.SessionID), Size: info.Size, UpdatedAt: info.UpdatedAt})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println(a.Theme.LayoutsTable(infos, time.Now()))
	return nil
}

func runLayoutsShow(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	out, err := a.LoadLayoutUC.Execute(a.Ctx(), entity.SessionID(args[0]))
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(out.Record.Document, '\n'))
	return err
}

func runLayoutsImport(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	data, source, err := readDocument(a, args[1:], "")
	if err != nil {
		return err
	}
	out, err := a.SaveLayoutUC.Execute(a.Ctx(), usecase.SaveLayoutInput{
		SessionID: entity.SessionID(args[0]),
		Document:  data,
	})
	if err != nil {
		return err
	}
	fmt.Println(a.Theme.LoadReport(source, out.Report))
	fmt.Println(a.Theme.SuccessStyle.Render(fmt.Sprintf("%s stored as %s", source, out.Record.SessionID)))
	return nil
}

func runLayoutsDelete(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	session := entity.SessionID(args[0])

	if !layoutsYes {
		ok, err := confirm(a.Theme, fmt.Sprintf("Delete layout %s?", session))
		if err != nil || !ok {
			return err
		}
	}
	if err := a.DeleteLayoutUC.Execute(a.Ctx(), session); err != nil {
		return err
	}
	fmt.Println(a.Theme.SuccessStyle.Render(styles.IconCheck + " deleted " + string(session)))
	return nil
}

// confirm asks a yes/no question on the terminal.
func confirm(theme *styles.Theme, question string) (bool, error) {
	final, err := tea.NewProgram(styles.NewConfirm(theme, question)).Run()
	if err != nil {
		return false, err
	}
	return final.(styles.ConfirmModel).Result(), nil
}
