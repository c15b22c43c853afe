package main

import (
	"fmt"

	"github.com/siherrmann/coref"
	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
	"github.com/spf13/cobra"
)

func newIngestCmd(a *app) *cobra.Command {
	var embeddingDim int
	var text bool

	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Resolve documents and store their entities in Postgres",
		Long: `Resolve documents and store document, entities and merge links in Postgres.

The connection is configured with COREF_DB_* environment variables or a .env file.
With --text, raw text is run through the NER pipeline and entity names are embedded.

Examples:
  coref ingest doc.json
  coref ingest --text --language en article.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := a.resolverConfig()
			if err != nil {
				return err
			}

			dbConfig, err := helper.NewDatabaseConfiguration()
			if err != nil {
				return err
			}

			c, err := coref.NewCorefWithLogger(dbConfig, config, embeddingDim, a.logger)
			if err != nil {
				return err
			}
			defer c.Close()

			if text {
				if err := c.UseDefaultPipeline(); err != nil {
					return err
				}
			}

			for _, path := range args {
				var doc *model.Document
				var set *model.EntitySet
				if text {
					doc, err = model.NewDocumentFromFile(path, model.Metadata{})
					if err != nil {
						return helper.NewError("read "+path, err)
					}
					set, err = c.ProcessAndInsertDocument(doc)
				} else {
					doc, err = model.LoadDocumentJSON(path)
					if err != nil {
						return err
					}
					set, err = c.ResolveAndInsert(doc)
				}
				if err != nil {
					return helper.NewError("ingest "+path, err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d entities\t%d links\n", path, doc.RID, len(set.Entities), len(set.Links))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&embeddingDim, "embedding-dim", 384, "Entity embedding dimension")
	cmd.Flags().BoolVar(&text, "text", false, "Read raw text and detect mentions with the NER pipeline")

	return cmd
}
