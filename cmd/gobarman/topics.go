package main

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed docs/*.md
var topicsFS embed.FS

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: MsgDocsShort,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println("Available topics:")
			for _, topic := range topicNames() {
				fmt.Printf("  %s\n", topic)
			}
			return nil
		}
		content, err := topicsFS.ReadFile("docs/" + args[0] + ".md")
		if err != nil {
			return fmt.Errorf("unknown topic %q", args[0])
		}
		fmt.Print(renderMarkdown(string(content)))
		return nil
	},
}

func topicNames() []string {
	entries, err := topicsFS.ReadDir("docs")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}

// renderMarkdown converts markdown to terminal output, falling back to the
// raw text when the renderer cannot be built.
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
