package main

import (
	"fmt"
	"strconv"

	"github.com/siherrmann/coref/core/graph"
	"github.com/siherrmann/coref/core/pipeline"
	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
	"github.com/spf13/cobra"
)

func newExplainCmd(a *app) *cobra.Command {
	var text bool

	cmd := &cobra.Command{
		Use:   "explain <file> <mention-id>",
		Short: "Show the merges that joined a mention to its entity",
		Long: `Resolve one document and print the chain of merge links from the
first mention of an entity to the given mention.

Examples:
  coref explain doc.json 7`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid mention id %q", args[1])
			}

			config, err := a.resolverConfig()
			if err != nil {
				return err
			}

			var p *pipeline.Pipeline
			if text {
				p, err = textPipeline()
				if err != nil {
					return err
				}
			}

			docs, sets, err := resolveDocuments(cmd.Context(), config, args[:1], 1, p, nil, a.logger)
			if err != nil {
				return err
			}
			doc, set := docs[0], sets[0]

			entity := set.EntityOf(model.MentionID(id))
			if entity == nil {
				return helper.NewError("explain", fmt.Errorf("mention %d is not part of an emitted entity", id))
			}

			path, err := graph.MergePath(cmd.Context(), graph.NewSetGraph(doc, set), entity.MentionIDs[0], model.MentionID(id))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %q (%d mentions)\n", entity.Type, entity.Name, len(entity.MentionIDs))
			fmt.Fprintf(out, "  %d %q\n", path.Path[0], doc.Mention(path.Path[0]).Text)
			for i, link := range path.Links {
				next := path.Path[i+1]
				fmt.Fprintf(out, "  -> %d %q by %s (%.2f)\n", next, doc.Mention(next).Text, link.Merger, link.Score)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&text, "text", false, "Read raw text and detect mentions with the NER pipeline")

	return cmd
}
