package resolver

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/coref/core/cache"
	"github.com/siherrmann/coref/core/group"
	"github.com/siherrmann/coref/core/lexicon"
	"github.com/siherrmann/coref/core/merger"
	"github.com/siherrmann/coref/core/ruleset"
	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
)

// Resolver consolidates the mentions of one document at a time into entities.
// It owns its cache and must not be used concurrently.
type Resolver struct {
	config        model.ResolverConfig
	configuration ruleset.Configuration
	cache         *cache.LinkInfoCache
	merger        merger.Merger
	metrics       *Metrics
	logger        *slog.Logger
}

// NewResolver builds the ruleset of the configured language and loads its word lists
func NewResolver(config model.ResolverConfig, logger *slog.Logger) (*Resolver, error) {
	if logger == nil {
		logger = helper.NewDiscardLogger()
	}
	if err := config.Validate(); err != nil {
		return nil, helper.NewError("create resolver", err)
	}

	lex, err := lexicon.Load(config.AlternateSpellingsPath, config.AffiliationsPath, ruleset.RequiresLexicon(config.Language))
	if err != nil {
		return nil, helper.NewError("create resolver", err)
	}

	return NewResolverWithLexicon(config, lex, logger), nil
}

// NewResolverWithLexicon builds a resolver around already loaded word lists
func NewResolverWithLexicon(config model.ResolverConfig, lex *lexicon.Lexicon, logger *slog.Logger) *Resolver {
	return NewResolverWithConfiguration(config, ruleset.New(config, lex), lex, logger)
}

// NewResolverWithConfiguration builds a resolver for a custom ruleset
func NewResolverWithConfiguration(config model.ResolverConfig, configuration ruleset.Configuration, lex *lexicon.Lexicon, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = helper.NewDiscardLogger()
	}

	top := configuration.BuildMergers()
	if composite, ok := top.(*merger.Composite); ok {
		composite.WithLogger(logger)
	}

	return &Resolver{
		config:        config,
		configuration: configuration,
		cache:         cache.NewLinkInfoCache(configuration.BuildMentionExtractors(), configuration.BuildPairExtractors(), lex, logger),
		merger:        top,
		logger:        logger,
	}
}

// WithMetrics records resolution metrics in m
func (r *Resolver) WithMetrics(m *Metrics) *Resolver {
	r.metrics = m
	return r
}

// Language returns the language of the ruleset in use
func (r *Resolver) Language() string {
	return r.configuration.Language()
}

// BuildEntitySet resolves the mentions of doc into entities.
// Members whose entity type differs from their entity's type are updated in doc.
func (r *Resolver) BuildEntitySet(doc *model.Document) (*model.EntitySet, error) {
	start := time.Now()
	if err := doc.Prepare(); err != nil {
		return nil, helper.NewError("build entity set", err)
	}

	r.cache.SetDocument(doc)
	if err := r.cache.PopulateMentionFeatureTable(); err != nil {
		return nil, helper.NewError("build entity set", err)
	}

	list := r.initGroups(doc)
	mentions := list.Len()
	r.merger.Merge(list, r.cache)

	set := r.emit(doc, list)
	r.metrics.observe(r.Language(), set, r.cache.PairComputations(), time.Since(start))

	r.logger.Info("resolved document",
		slog.String("document", doc.Title),
		slog.String("language", r.Language()),
		slog.Int("mentions", mentions),
		slog.Int("groups", list.Len()),
		slog.Int("entities", len(set.Entities)),
		slog.Int("pair_computations", r.cache.PairComputations()),
	)

	return set, nil
}

// initGroups creates one singleton group per eligible mention in document order
func (r *Resolver) initGroups(doc *model.Document) *group.List {
	var eligible []*model.Mention
	for _, mention := range doc.Mentions() {
		if mention.IsEligible() {
			eligible = append(eligible, mention)
		}
	}
	return group.NewListFromMentions(eligible)
}

func (r *Resolver) emit(doc *model.Document, list *group.List) *model.EntitySet {
	set := &model.EntitySet{
		DocumentRID: doc.RID,
		Title:       doc.Title,
		Language:    r.Language(),
		Entities:    []*model.Entity{},
	}
	now := time.Now()

	for _, g := range list.Groups() {
		entityType := g.EntityType()
		if entityType == model.EntityTypeUndetermined && !r.config.IncludeUndetermined {
			continue
		}

		for _, m := range g.Mentions() {
			if m.EntityType.IsRecognized() && m.EntityType != entityType {
				r.logger.Debug("overriding entity type", slog.Int("mention", int(m.ID)), slog.String("from", string(m.EntityType)), slog.String("to", string(entityType)))
				m.EntityType = entityType
			}
		}

		entity := &model.Entity{
			ID:          EntityID(doc.RID, g.ID()),
			DocumentRID: doc.RID,
			Name:        entityName(g),
			Type:        entityType,
			MentionIDs:  g.MentionIDs(),
			CreatedAt:   now,
		}
		set.Entities = append(set.Entities, entity)

		for _, link := range g.Links() {
			set.Links = append(set.Links, &model.MergeLink{
				ID:              LinkID(entity.ID, link.Target),
				EntityID:        entity.ID,
				SourceMentionID: link.Source,
				TargetMentionID: link.Target,
				Merger:          link.Merger,
				Score:           link.Score,
				CreatedAt:       now,
			})
		}
	}

	return set
}

// EntityID derives the id of the entity created for the group of a mention
func EntityID(documentRID uuid.UUID, first model.MentionID) uuid.UUID {
	return uuid.NewSHA1(documentRID, []byte("entity:"+strconv.Itoa(int(first))))
}

// LinkID derives the id of the link absorbing a group into an entity
func LinkID(entityID uuid.UUID, target model.MentionID) uuid.UUID {
	return uuid.NewSHA1(entityID, []byte("link:"+strconv.Itoa(int(target))))
}

// entityName prefers the first name mention, then the first mention with text
func entityName(g *group.MentionGroup) string {
	for _, m := range g.Mentions() {
		if m.MentionType == model.MentionTypeName && m.Text != "" {
			return m.Text
		}
	}
	for _, m := range g.Mentions() {
		if m.MentionType != model.MentionTypePronoun && m.Text != "" {
			return m.Text
		}
	}
	return g.Mentions()[0].Text
}
