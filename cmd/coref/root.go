package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

// app carries the configuration shared by all subcommands
type app struct {
	v      *viper.Viper
	logger *slog.Logger
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "coref",
		Short: "Consolidate entity mentions into coreferent entities",
		Long: `Consolidate the mentions of analysed documents into entities.

Documents are read as JSON (sentences with mentions and propositions) or,
with --text, as raw text run through the NER pipeline.

Examples:
  coref resolve doc.json                    # Print the entity set as JSON
  coref resolve --format yaml docs/*.json   # Print YAML
  coref explain doc.json 7                  # Show how mention 7 was merged
  coref ingest --language en doc.json       # Store entities in Postgres`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closer != nil {
				a.closer.Close()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "YAML config file")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Write JSON logs to a rotated file instead of stderr")
	flags.String("language", model.LanguageGeneric, "Ruleset language (generic, en)")
	flags.Int("max-sentence-distance", 3, "Merge window in sentences, negative disables it")
	flags.Int("aggressiveness", 50, "Enable lower precision mergers (0-100)")
	flags.Bool("include-undetermined", false, "Emit entities of undetermined type")
	flags.String("alternate-spellings", "", "Alternate spellings word list")
	flags.String("affiliations", "", "Nation affiliations word list")

	for key, name := range map[string]string{
		"config":                            "config",
		"log.level":                         "log-level",
		"log.file":                          "log-file",
		"resolver.language":                 "language",
		"resolver.max_sentence_distance":    "max-sentence-distance",
		"resolver.aggressiveness":           "aggressiveness",
		"resolver.include_undetermined":     "include-undetermined",
		"resolver.alternate_spellings_path": "alternate-spellings",
		"resolver.affiliations_path":        "affiliations",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	cmd.AddCommand(newResolveCmd(a), newExplainCmd(a), newIngestCmd(a))

	return cmd
}

// init reads the config file and environment and sets up logging
func (a *app) init() error {
	a.v.SetEnvPrefix("COREF")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	defaults := model.DefaultResolverConfig()
	a.v.SetDefault("resolver.location_affixes", defaults.LocationAffixes)

	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		a.v.SetConfigType("yaml")
		if err := a.v.ReadInConfig(); err != nil {
			return helper.NewError("read config", err)
		}
	}

	level, err := parseLevel(a.v.GetString("log.level"))
	if err != nil {
		return err
	}

	if file := a.v.GetString("log.file"); file != "" {
		rotated := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		a.closer = rotated
		a.logger = slog.New(slog.NewJSONHandler(rotated, &slog.HandlerOptions{Level: level}))
	} else {
		a.logger = helper.NewLogger(os.Stderr, level)
	}

	return nil
}

// resolverConfig returns the resolver configuration merged from defaults, file, env and flags
func (a *app) resolverConfig() (model.ResolverConfig, error) {
	settings := struct {
		Resolver model.ResolverConfig `mapstructure:"resolver"`
	}{Resolver: model.DefaultResolverConfig()}

	if err := a.v.Unmarshal(&settings); err != nil {
		return settings.Resolver, helper.NewError("decode resolver config", err)
	}
	if err := settings.Resolver.Validate(); err != nil {
		return settings.Resolver, err
	}
	return settings.Resolver, nil
}

func parseLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return level, helper.NewError("parse log level", fmt.Errorf("%w: %q", helper.ErrMissingConfig, value))
	}
	return level, nil
}
