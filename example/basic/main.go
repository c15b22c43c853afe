package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/coref"
	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
)

const sampleContent = `John Smith founded Acme Corporation in Chicago.

Smith was its first president. He later moved the company to Boston.
The company now employs thousands of people, and Acme is still run by his family.`

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	c, err := coref.NewCoref(dbConfig, model.DefaultResolverConfig(), 384)
	if err != nil {
		log.Fatalf("Failed to create coref: %v", err)
	}
	defer c.Close()

	// NER, description and pronoun detection plus name embeddings
	if err := c.UseDefaultPipeline(); err != nil {
		log.Fatalf("Failed to set up pipeline: %v", err)
	}

	doc := &model.Document{
		Title:   "Acme Corporation",
		Source:  "basic_example",
		Content: sampleContent,
		Metadata: model.Metadata{
			"author": "Example Author",
		},
	}

	fmt.Println("Resolving document...")
	set, err := c.ProcessAndInsertDocument(doc)
	if err != nil {
		log.Fatalf("Failed to process and insert document: %v", err)
	}
	fmt.Printf("Document inserted with ID: %s\n", doc.RID)
	fmt.Printf("Found %d entities and %d merge links\n", len(set.Entities), len(set.Links))

	for _, entity := range set.Entities {
		var texts []string
		for _, id := range entity.MentionIDs {
			if mention := doc.Mention(id); mention != nil {
				texts = append(texts, mention.Text)
			}
		}
		fmt.Printf("  %-4s %-20s %v\n", entity.Type, entity.Name, texts)
	}

	query := "Smith"
	fmt.Printf("\nEntities similar to %q:\n", query)
	similar, err := c.SimilarEntities(context.Background(), query, 3, 0.0, nil)
	if err != nil {
		log.Fatalf("Failed to search entities: %v", err)
	}
	for _, entity := range similar {
		fmt.Printf("  %.4f %s (%s)\n", entity.Similarity, entity.Name, entity.Type)
	}

	fmt.Println("\nBasic example completed successfully!")
}
