package main

import (
	"encoding/json"
	"fmt"
	"os/user"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/pomodoro/internal/app"
	"github.com/sadopc/pomodoro/internal/command"
	"github.com/sadopc/pomodoro/internal/export"
	"github.com/sadopc/pomodoro/internal/store"
	"github.com/sadopc/pomodoro/internal/tui"
)

func startup(cmd *cobra.Command) (*app.App, error) {
	a, err := app.Startup(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("startup: %w", err)
	}
	return a, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	a, err := startup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	name := "there"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}

	p := tea.NewProgram(tui.NewApp(a.Store, command.Greet(name)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runGreet(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), command.Greet(args[0]))
	return nil
}

func runInvoke(cmd *cobra.Command, args []string) error {
	a, err := startup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var raw json.RawMessage
	if len(args) == 2 {
		if !json.Valid([]byte(args[1])) {
			return fmt.Errorf("arguments are not valid JSON")
		}
		raw = json.RawMessage(args[1])
	}

	out, err := a.Commands.Invoke(cmd.Context(), args[0], raw)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func runDBMigrate(cmd *cobra.Command, _ []string) error {
	a, err := startup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	v, err := a.Store.SchemaVersion(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", v)
	return nil
}

func runDBStatus(cmd *cobra.Command, _ []string) error {
	a, err := startup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	applied, err := a.Store.AppliedMigrations(ctx)
	if err != nil {
		return err
	}
	pending, err := a.Store.PendingMigrations(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "database: %s\n", cfg.DBPath)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tDESCRIPTION\tAPPLIED")
	for _, m := range applied {
		fmt.Fprintf(w, "%d\t%s\t%s\n", m.Version, m.Description, m.AppliedAt.Local().Format("2006-01-02 15:04:05"))
	}
	for _, m := range pending {
		fmt.Fprintf(w, "%d\t%s\tpending\n", m.Version, m.Description)
	}
	return w.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	format, path := args[0], args[1]
	if format != "csv" && format != "json" {
		return fmt.Errorf("unknown export format %q (want csv or json)", format)
	}

	a, err := startup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	sessions, err := a.Store.ListSessions(cmd.Context(), store.SessionFilter{})
	if err != nil {
		return err
	}

	if format == "csv" {
		err = export.ToCSV(sessions, path)
	} else {
		err = export.ToJSON(sessions, path)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d sessions to %s\n", len(sessions), path)
	return nil
}
