package pipeline

import (
	"regexp"
	"strings"

	"github.com/siherrmann/coref/model"
)

var copulaPattern = regexp.MustCompile(`(?i)^\s*,?\s*(is|was|are|were|became|becomes|remains|remained)\s+$`)

// CopulaPropositions creates a proposition builder linking two adjacent mentions
// joined by a form of "to be", as "Smith is the president"
func CopulaPropositions() PropositionFunc {
	return func(sentence string, mentions []*model.Mention) ([]*model.Proposition, error) {
		spans := mentionSpans(sentence, mentions)

		var propositions []*model.Proposition
		for i := 0; i+1 < len(spans); i++ {
			subject, object := spans[i], spans[i+1]
			if subject.end > object.start {
				continue
			}
			match := copulaPattern.FindStringSubmatch(sentence[subject.end:object.start])
			if match == nil {
				continue
			}
			propositions = append(propositions, &model.Proposition{
				ID:        int(subject.mention.ID),
				Type:      model.PropositionTypeCopula,
				Predicate: strings.ToLower(match[1]),
				Arguments: []model.Argument{
					{Role: model.RoleSubject, MentionID: subject.mention.ID},
					{Role: model.RoleObject, MentionID: object.mention.ID},
				},
			})
		}
		return propositions, nil
	}
}

type mentionSpan struct {
	mention    *model.Mention
	start, end int
}

// mentionSpans locates the outermost mentions of a sentence in order
func mentionSpans(sentence string, mentions []*model.Mention) []mentionSpan {
	var spans []mentionSpan
	from := 0
	for _, m := range mentions {
		if m.HasParent() {
			continue
		}
		i := strings.Index(sentence[from:], m.Text)
		if i < 0 {
			continue
		}
		start := from + i
		spans = append(spans, mentionSpan{mention: m, start: start, end: start + len(m.Text)})
		from = start + len(m.Text)
	}
	return spans
}
