package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/confluence-go/confluence"
	"github.com/custodia-labs/confluence-go/internal/logger"
)

var (
	flagStreamSpace  string
	flagStreamFormat string
	flagStreamJSON   bool
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Stream a space's pages in batches",
	Long: `Stream walks a space's pages lazily, printing each batch of documents as
it is produced. Memory stays bounded regardless of space size.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagStreamSpace == "" {
			return fmt.Errorf("--space is required")
		}
		loader, err := newLoader()
		if err != nil {
			return err
		}

		var opts []confluence.LoadOption
		if flagStreamFormat != "" {
			opts = append(opts, confluence.WithBodyFormat(flagStreamFormat))
		}

		stream := loader.StreamSpacePages(flagStreamSpace, opts...)
		batch := 0
		for {
			docs, err := stream.Next(cmd.Context())
			if errors.Is(err, confluence.ErrStreamDone) {
				logger.Info("stream finished after %d batches", batch)
				return nil
			}
			if err != nil {
				return err
			}
			batch++
			logger.Section(fmt.Sprintf("Batch %d", batch))
			if err := printDocuments(docs, flagStreamJSON); err != nil {
				return err
			}
		}
	},
}

func init() {
	streamCmd.Flags().StringVar(&flagStreamSpace, "space", "", "space key or numeric id")
	streamCmd.Flags().StringVar(&flagStreamFormat, "body-format", "", "body format: storage, view or atlas_doc_format")
	streamCmd.Flags().BoolVar(&flagStreamJSON, "json", false, "emit batches as JSON")
	rootCmd.AddCommand(streamCmd)
}
