package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

const frontMatter = `---
title: "%s"
---
`

func docgenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "docgen",
		Short:  "Generate the markdown documentation of the CLI commands.",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docPath, err := cmd.Flags().GetString("path")
			if err != nil {
				return err
			}
			return generateDocs(rootCmd, docPath)
		},
	}
	cmd.Flags().String("path", "./docs/cmd", "path to write the generated documentation to")

	return cmd
}

func generateDocs(root *cobra.Command, docPath string) error {
	if err := os.MkdirAll(docPath, 0o750); err != nil {
		return fmt.Errorf("can't create documentation directory: %w", err)
	}

	root.DisableAutoGenTag = true
	return doc.GenMarkdownTreeCustom(root, docPath, docTitle, docLink)
}

// docTitle turns testbrain_merge.md into the front matter title "testbrain merge".
func docTitle(filename string) string {
	name := filepath.Base(filename)
	title := strings.ReplaceAll(strings.TrimSuffix(name, path.Ext(name)), "_", " ")

	return fmt.Sprintf(frontMatter, title)
}

func docLink(name string) string {
	return "../" + strings.ToLower(strings.TrimSuffix(name, path.Ext(name))) + "/"
}
