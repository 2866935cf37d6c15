package main

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/confluence-go/confluence"
	"github.com/custodia-labs/confluence-go/document"
)

var (
	flagPageFormat   string
	flagPageMarkdown bool
	flagPageJSON     bool
)

var pageCmd = &cobra.Command{
	Use:   "page <id>",
	Short: "Fetch a single page by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader()
		if err != nil {
			return err
		}

		format := flagPageFormat
		if format == "" {
			format = confluence.FormatStorage
		}

		page, err := loader.Client().GetPage(cmd.Context(), args[0], format)
		if err != nil {
			return err
		}

		if flagPageMarkdown {
			markup := ""
			if page.Body != nil {
				switch {
				case page.Body.Storage != nil:
					markup = page.Body.Storage.Value
				case page.Body.View != nil:
					markup = page.Body.View.Value
				}
			}
			markdown, err := htmltomarkdown.ConvertString(markup)
			if err != nil {
				return fmt.Errorf("converting page to markdown: %w", err)
			}
			fmt.Println(markdown)
			return nil
		}

		return printDocuments([]document.Document{page.ToDocument()}, flagPageJSON)
	},
}

func init() {
	pageCmd.Flags().StringVar(&flagPageFormat, "body-format", "", "body format: storage, view or atlas_doc_format")
	pageCmd.Flags().BoolVar(&flagPageMarkdown, "markdown", false, "emit the page body as Markdown")
	pageCmd.Flags().BoolVar(&flagPageJSON, "json", false, "emit the document as JSON")
	rootCmd.AddCommand(pageCmd)
}
