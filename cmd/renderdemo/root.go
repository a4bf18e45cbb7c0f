package main

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "renderdemo",
		Short:        "Render resumes and manage them through the API",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	api := &apiFlags{}
	root.PersistentFlags().StringVar(&api.baseURL, "api", envOr("RESUME_API_URL", "http://localhost:8080"), "API base URL")
	root.PersistentFlags().StringVar(&api.sessionPath, "session", os.Getenv("RESUME_SESSION_FILE"), "session file (default ~/.config/resume-builder/session.json)")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newStylesCmd())
	root.AddCommand(newRegisterCmd(api))
	root.AddCommand(newLoginCmd(api))
	root.AddCommand(newLogoutCmd(api))
	root.AddCommand(newProfileCmd(api))
	root.AddCommand(newListCmd(api))
	root.AddCommand(newFetchCmd(api))
	return root
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
