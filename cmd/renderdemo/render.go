package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

type renderOptions struct {
	style      string
	width      float64
	format     string
	out        string
	stylesFile string
}

func newRenderCmd() *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <resume.json>",
		Short: "Lay out a resume JSON file as a document tree or HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.style, "style", "s", "", "style name or alias (default: first registered style)")
	cmd.Flags().Float64VarP(&opts.width, "width", "w", 0, "container width in px; 0 renders at natural size")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "html", "output format: html or json")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.stylesFile, "styles", os.Getenv("RESUME_STYLES_FILE"), "extra styles YAML file")
	return cmd
}

func runRender(cmd *cobra.Command, path string, opts renderOptions) error {
	logger := loggerFromContext(cmd.Context())
	start := time.Now()

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	data, err := model.Parse(raw)
	if err != nil {
		return err
	}

	registry, err := loadRegistry(opts.stylesFile)
	if err != nil {
		return err
	}
	style, ok := registry.Lookup(opts.style)
	if !ok {
		return fmt.Errorf("unknown style %q (available: %s)", opts.style, strings.Join(registry.Names(), ", "))
	}
	logger.Debug("rendering", "file", path, "style", style.Name, "width", opts.width)

	doc := render.New(style).Render(render.Request{Data: data, ContainerWidth: opts.width})

	if opts.out == "" {
		err = writeDocument(cmd.OutOrStdout(), doc, opts.format)
	} else {
		var f *os.File
		if f, err = os.Create(opts.out); err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		err = writeAndClose(f, doc, opts.format)
	}
	if err != nil {
		return err
	}

	logger.Infof("Rendered %s with style %s (%s)", path, style.Name, time.Since(start).Round(time.Millisecond))
	return nil
}

func writeDocument(w io.Writer, doc render.Document, format string) error {
	switch strings.ToLower(format) {
	case "html":
		return render.WriteHTML(w, doc)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unknown format %q: want html or json", format)
	}
}

// writeAndClose writes doc and closes wc. A close failure is reported because
// buffered output may not have reached the file.
func writeAndClose(wc io.WriteCloser, doc render.Document, format string) error {
	werr := writeDocument(wc, doc, format)
	cerr := wc.Close()
	if werr != nil {
		return werr
	}
	if cerr != nil {
		return fmt.Errorf("close output: %w", cerr)
	}
	return nil
}

func loadRegistry(stylesFile string) (*render.Registry, error) {
	registry := render.DefaultRegistry()
	if strings.TrimSpace(stylesFile) == "" {
		return registry, nil
	}
	extra, err := render.LoadStylesFile(stylesFile)
	if err != nil {
		return nil, err
	}
	return registry.With(extra...)
}

func newStylesCmd() *cobra.Command {
	var stylesFile string
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List the available styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry(stylesFile)
			if err != nil {
				return err
			}
			for _, name := range registry.Names() {
				st, _ := registry.Lookup(name)
				line := fmt.Sprintf("%-12s %s", st.Name, st.Layout)
				if len(st.Aliases) > 0 {
					line += "  (" + strings.Join(st.Aliases, ", ") + ")"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&stylesFile, "styles", os.Getenv("RESUME_STYLES_FILE"), "extra styles YAML file")
	return cmd
}
