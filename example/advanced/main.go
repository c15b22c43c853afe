package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/siherrmann/coref/core/resolver"
	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
)

// mention builds a pre-analysed mention
func mention(id model.MentionID, text string, head string, entityType model.EntityType, mentionType model.MentionType) *model.Mention {
	return &model.Mention{
		ID:          id,
		Text:        text,
		HeadWord:    head,
		EntityType:  entityType,
		MentionType: mentionType,
	}
}

func main() {
	logger := helper.NewLogger(os.Stderr, slog.LevelInfo)

	config := model.DefaultResolverConfig()
	config.Language = model.LanguageEnglish
	config.AlternateSpellingsPath = "data/en/alternate_spellings.txt"
	config.AffiliationsPath = "data/en/affiliations.txt"
	config.Aggressiveness = 80

	r, err := resolver.NewResolver(config, logger)
	if err != nil {
		log.Fatalf("Failed to create resolver: %v", err)
	}

	// Mentions as an upstream analyser would deliver them
	doc := &model.Document{
		Title:  "Trade talks",
		Source: "advanced_example",
		Sentences: []*model.Sentence{
			{
				Text: "Li Wei, the mayor of Peking, met American officials.",
				Mentions: []*model.Mention{
					mention(0, "Li Wei", "Wei", model.EntityTypePerson, model.MentionTypeName),
					mention(1, "the mayor of Peking", "mayor", model.EntityTypePerson, model.MentionTypeDescription),
					mention(2, "Peking", "Peking", model.EntityTypeGPE, model.MentionTypeName),
					mention(3, "American", "American", model.EntityTypeGPE, model.MentionTypeName),
				},
				Propositions: []*model.Proposition{{
					ID:   0,
					Type: model.PropositionTypeCopula,
					Arguments: []model.Argument{
						{Role: model.RoleSubject, MentionID: 0},
						{Role: model.RoleObject, MentionID: 1},
					},
				}},
			},
			{
				Text: "Beijing and the United States agreed on new tariffs.",
				Mentions: []*model.Mention{
					mention(4, "Beijing", "Beijing", model.EntityTypeGPE, model.MentionTypeName),
					mention(5, "the United States", "States", model.EntityTypeGPE, model.MentionTypeName),
				},
			},
			{
				Text: "He said the talks went well.",
				Mentions: []*model.Mention{
					mention(6, "He", "He", model.EntityTypeUndetermined, model.MentionTypePronoun),
				},
			},
		},
	}

	set, err := r.BuildEntitySet(doc)
	if err != nil {
		log.Fatalf("Failed to resolve document: %v", err)
	}

	fmt.Printf("Resolved %q into %d entities\n", doc.Title, len(set.Entities))
	for _, entity := range set.Entities {
		fmt.Printf("\n%s %q\n", entity.Type, entity.Name)
		for _, id := range entity.MentionIDs {
			fmt.Printf("  mention %d: %s\n", id, doc.Mention(id).Text)
		}
		for _, link := range set.LinksOf(entity.ID) {
			fmt.Printf("  %d -> %d by %s\n", link.SourceMentionID, link.TargetMentionID, link.Merger)
		}
	}

	fmt.Println("\nAdvanced example completed successfully!")
}
