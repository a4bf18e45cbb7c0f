package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-builder/internal/client"
)

type apiFlags struct {
	baseURL     string
	sessionPath string
}

func (f *apiFlags) client(cmd *cobra.Command) (*client.Client, error) {
	session, err := client.NewFileSession(f.sessionPath)
	if err != nil {
		return nil, err
	}
	logger := loggerFromContext(cmd.Context())
	nav := client.NavigatorFunc(func(string) {
		logger.Warn("Session ended; run `renderdemo login` again", "session", session.Path())
	})
	return client.New(f.baseURL, session, nav), nil
}

func passwordFlag(value string) (string, error) {
	if value != "" {
		return value, nil
	}
	if env := os.Getenv("RESUME_PASSWORD"); env != "" {
		return env, nil
	}
	return "", errors.New("password required: pass --password or set RESUME_PASSWORD")
}

func newRegisterCmd(api *apiFlags) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and store its session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFlag(password)
			if err != nil {
				return err
			}
			c, err := api.client(cmd)
			if err != nil {
				return err
			}
			sess, err := c.Register(cmd.Context(), name, email, pw)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("Registered", "id", sess.ID, "email", sess.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (or RESUME_PASSWORD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLoginCmd(api *apiFlags) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFlag(password)
			if err != nil {
				return err
			}
			c, err := api.client(cmd)
			if err != nil {
				return err
			}
			sess, err := c.Login(cmd.Context(), email, pw)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("Signed in", "name", sess.Name, "email", sess.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (or RESUME_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(api *apiFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := api.client(cmd)
			if err != nil {
				return err
			}
			return c.Logout()
		},
	}
}

func newProfileCmd(api *apiFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := api.client(cmd)
			if err != nil {
				return err
			}
			p, err := c.Profile(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, p)
		},
	}
}

func newListCmd(api *apiFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved resumes, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := api.client(cmd)
			if err != nil {
				return err
			}
			list, err := c.ListResumes(cmd.Context())
			if err != nil {
				return err
			}
			for _, r := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s %s\n", r.ID, r.Template, r.Title)
			}
			return nil
		},
	}
}

func newFetchCmd(api *apiFlags) *cobra.Command {
	var style, format string
	var width float64
	cmd := &cobra.Command{
		Use:   "fetch <id>",
		Short: "Render a saved resume through the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := api.client(cmd)
			if err != nil {
				return err
			}
			doc, err := c.RenderResume(cmd.Context(), args[0], style, width)
			if err != nil {
				return err
			}
			return writeDocument(cmd.OutOrStdout(), doc, format)
		},
	}
	cmd.Flags().StringVarP(&style, "style", "s", "", "style override (default: the resume's template)")
	cmd.Flags().Float64VarP(&width, "width", "w", 0, "container width in px")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: html or json")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
