package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/five82/gitproxy/internal/app"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := newRootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case app.IsSetupError(err):
		fmt.Fprintln(os.Stderr, setupErrorBox(err))
	case errors.Is(err, app.ErrOperationFailed):
		// Details were already printed by the command.
	default:
		fmt.Fprintf(os.Stderr, "gitproxy: %v\n", err)
	}
	return 1
}

func newRootCmd() *cobra.Command {
	opts := app.Options{Version: version}

	root := &cobra.Command{
		Use:           "gitproxy",
		Short:         "Set, clear and inspect git's global HTTP(S) proxy",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.Overrides.SettingsPath, "settings", "", "settings file path (default: gitproxy.toml next to the executable)")
	flags.StringVar(&opts.Overrides.GitBinary, "git", "", "git executable to run (default: git on PATH)")
	flags.DurationVar(&opts.Overrides.Timeout, "timeout", 0, "per-command timeout (default 10s)")
	flags.StringVar(&opts.Overrides.LogFile, "log-file", "", "write debug logs to this file")

	root.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Print the current http.proxy and https.proxy values",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.Status(cmd.Context(), opts, cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "set [host] [port]",
			Short: "Point both proxy keys at host:port (defaults from the settings file)",
			Args:  cobra.MaximumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				var host, port string
				if len(args) > 0 {
					host = args[0]
				}
				if len(args) > 1 {
					port = args[1]
				}
				return app.Set(cmd.Context(), opts, host, port, cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "unset",
			Short: "Remove both proxy keys from the global git config",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.Unset(cmd.Context(), opts, cmd.OutOrStdout())
			},
		},
	)
	return root
}

func setupErrorBox(err error) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("9")).
		Padding(0, 1)
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render("git not found")
	body := fmt.Sprintf("%s\n\n%v\nInstall git from https://git-scm.com/downloads and make sure it is on PATH,\nor pass --git / set GITPROXY_GIT.", title, err)
	return style.Render(body)
}
