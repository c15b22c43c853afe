package pipeline

import (
	"regexp"
	"sort"
	"strings"

	"github.com/siherrmann/coref/model"
)

// Words detected as pronouns
var pronouns = []string{
	"he", "him", "his", "himself", "she", "her", "hers", "herself", "it", "its", "itself",
	"they", "them", "their", "theirs", "themselves", "i", "me", "my", "mine", "myself",
	"we", "us", "our", "ours", "ourselves", "you", "your", "yours", "yourself", "yourselves",
}

// DefaultDescriptionNouns maps head nouns of descriptions to their entity type
var DefaultDescriptionNouns = map[string]model.EntityType{
	"man": model.EntityTypePerson, "woman": model.EntityTypePerson, "president": model.EntityTypePerson,
	"minister": model.EntityTypePerson, "mayor": model.EntityTypePerson, "spokesman": model.EntityTypePerson,
	"company": model.EntityTypeOrganization, "firm": model.EntityTypeOrganization, "group": model.EntityTypeOrganization,
	"government": model.EntityTypeOrganization, "party": model.EntityTypeOrganization,
	"country": model.EntityTypeGPE, "city": model.EntityTypeGPE, "capital": model.EntityTypeGPE, "nation": model.EntityTypeGPE,
	"river": model.EntityTypeLocation, "mountain": model.EntityTypeLocation,
	"airport": model.EntityTypeFacility, "building": model.EntityTypeFacility, "bridge": model.EntityTypeFacility,
	"car": model.EntityTypeVehicle, "ship": model.EntityTypeVehicle, "rifle": model.EntityTypeWeapon,
}

// PronounDetector finds personal pronouns
func PronounDetector() DetectFunc {
	pattern := regexp.MustCompile(`(?i)\b(` + strings.Join(pronouns, "|") + `)\b`)

	return func(sentence string) ([]*DetectedMention, error) {
		var mentions []*DetectedMention
		for _, match := range pattern.FindAllStringIndex(sentence, -1) {
			word := sentence[match[0]:match[1]]
			mentions = append(mentions, &DetectedMention{
				Text:        word,
				Start:       match[0],
				End:         match[1],
				HeadWord:    word,
				EntityType:  model.EntityTypeUndetermined,
				MentionType: model.MentionTypePronoun,
				Score:       1,
			})
		}
		return mentions, nil
	}
}

// DescriptionDetector finds determiner phrases ending in one of the given head nouns,
// as "the small company"
func DescriptionDetector(nouns map[string]model.EntityType) DetectFunc {
	heads := make([]string, 0, len(nouns))
	for noun := range nouns {
		heads = append(heads, regexp.QuoteMeta(noun))
	}
	// longest first so the alternation prefers "capital" over "cap"
	sort.Slice(heads, func(i, j int) bool {
		if len(heads[i]) != len(heads[j]) {
			return len(heads[i]) > len(heads[j])
		}
		return heads[i] < heads[j]
	})
	pattern := regexp.MustCompile(`(?i)\b(?:the|a|an|this|that)\s+(?:[\p{L}-]+\s+){0,2}?(` + strings.Join(heads, "|") + `)\b`)

	return func(sentence string) ([]*DetectedMention, error) {
		var mentions []*DetectedMention
		for _, match := range pattern.FindAllStringSubmatchIndex(sentence, -1) {
			head := sentence[match[2]:match[3]]
			mentions = append(mentions, &DetectedMention{
				Text:        sentence[match[0]:match[1]],
				Start:       match[0],
				End:         match[1],
				HeadWord:    head,
				EntityType:  nouns[strings.ToLower(head)],
				MentionType: model.MentionTypeDescription,
				Score:       1,
			})
		}
		return mentions, nil
	}
}
