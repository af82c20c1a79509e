package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newDocsCmd() *cobra.Command {
	var dir string
	var formats []string
	cmd := &cobra.Command{
		Use:         "docs",
		Short:       "Generate Markdown and man page reference for every command",
		Hidden:      true,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipAppAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			root.DisableAutoGenTag = true
			for _, f := range formats {
				if err := genDocs(root, f, dir); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "docs", "output directory; one subdirectory per format")
	cmd.Flags().StringSliceVar(&formats, "format", []string{"markdown", "man"}, "formats to write: markdown, man")
	return cmd
}

func genDocs(root *cobra.Command, format, dir string) error {
	out := filepath.Join(dir, format)
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	switch format {
	case "markdown":
		return doc.GenMarkdownTree(root, out)
	case "man":
		return doc.GenManTree(root, &doc.GenManHeader{Title: "EVENTWIZARD-CLI", Section: "1"}, out)
	default:
		return fmt.Errorf("unknown docs format %q (want markdown or man)", format)
	}
}
