package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/siherrmann/coref/core/lexicon"
	"github.com/siherrmann/coref/core/pipeline"
	"github.com/siherrmann/coref/core/resolver"
	"github.com/siherrmann/coref/core/ruleset"
	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newResolveCmd(a *app) *cobra.Command {
	var format string
	var outputDir string
	var workers int
	var text bool
	var metricsFile string

	cmd := &cobra.Command{
		Use:   "resolve <file>...",
		Short: "Resolve documents and print their entity sets",
		Long: `Resolve documents and print their entity sets.

Every worker owns one resolver, documents are written in argument order.

Examples:
  coref resolve doc.json
  coref resolve --workers 8 --output-dir out/ docs/*.json
  coref resolve --metrics-file coref.prom docs/*.json
  coref resolve --text --language en article.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported format %q (use json or yaml)", format)
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

			reg := prometheus.NewRegistry()
			metrics := resolver.NewMetrics()
			if err := metrics.Register(reg); err != nil {
				return helper.NewError("register metrics", err)
			}

			_, sets, err := resolveDocuments(cmd.Context(), config, args, workers, p, metrics, a.logger)
			if err != nil {
				return err
			}

			for i, set := range sets {
				if outputDir == "" {
					if err := writeEntitySet(cmd.OutOrStdout(), set, format); err != nil {
						return err
					}
					continue
				}
				if err := writeEntitySetFile(outputPath(outputDir, args[i], format), set, format); err != nil {
					return err
				}
			}

			if metricsFile != "" {
				if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
					return helper.NewError("write metrics", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, yaml)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Write one file per document instead of stdout")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "Documents resolved in parallel")
	cmd.Flags().BoolVar(&text, "text", false, "Read raw text and detect mentions with the NER pipeline")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write resolver metrics in Prometheus text format")

	return cmd
}

// resolveDocuments reads and resolves every file with one resolver per worker.
// Results keep the order of paths.
func resolveDocuments(ctx context.Context, config model.ResolverConfig, paths []string, workers int, p *pipeline.Pipeline, metrics *resolver.Metrics, logger *slog.Logger) ([]*model.Document, []*model.EntitySet, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	lex, err := lexicon.Load(config.AlternateSpellingsPath, config.AffiliationsPath, ruleset.RequiresLexicon(config.Language))
	if err != nil {
		return nil, nil, helper.NewError("load word lists", err)
	}

	read := readDocument
	if p != nil {
		var mu sync.Mutex
		read = func(path string) (*model.Document, error) {
			mu.Lock()
			defer mu.Unlock()
			return processTextFile(p, path)
		}
	}

	docs := make([]*model.Document, len(paths))
	sets := make([]*model.EntitySet, len(paths))
	jobs := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := range paths {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		r := resolver.NewResolverWithLexicon(config, lex, logger).WithMetrics(metrics)
		g.Go(func() error {
			for i := range jobs {
				doc, err := read(paths[i])
				if err != nil {
					return helper.NewError("read "+paths[i], err)
				}
				set, err := r.BuildEntitySet(doc)
				if err != nil {
					return helper.NewError("resolve "+paths[i], err)
				}
				docs[i] = doc
				sets[i] = set
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return docs, sets, nil
}

func readDocument(path string) (*model.Document, error) {
	return model.LoadDocumentJSON(path)
}

func processTextFile(p *pipeline.Pipeline, path string) (*model.Document, error) {
	raw, err := model.NewDocumentFromFile(path, model.Metadata{})
	if err != nil {
		return nil, err
	}

	doc, err := p.Process(raw.Content, raw.Title)
	if err != nil {
		return nil, err
	}
	doc.Source = raw.Source
	return doc, nil
}

// textPipeline builds the NER based pipeline without embeddings
func textPipeline() (*pipeline.Pipeline, error) {
	ner, err := pipeline.NERDetector()
	if err != nil {
		return nil, helper.NewError("create mention detector", err)
	}

	p := pipeline.NewPipeline(
		pipeline.SentenceSegmenter(),
		ner,
		pipeline.DescriptionDetector(pipeline.DefaultDescriptionNouns),
		pipeline.PronounDetector(),
	)
	p.SetPropositionBuilder(pipeline.CopulaPropositions())
	return p, nil
}

func outputPath(dir string, input string, format string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+".entities."+format)
}

func writeEntitySetFile(path string, set *model.EntitySet, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return helper.NewError("create output directory", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return helper.NewError("create output file", err)
	}
	if err := writeEntitySet(f, set, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
