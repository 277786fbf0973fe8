// Package verify orchestrates the anonymity audit: it opens a document,
// runs the conjugation, word-list and entity checks over its text and
// assembles the report.
package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anoncheck/anoncheck/internal/cache"
	"github.com/anoncheck/anoncheck/internal/conjugate"
	"github.com/anoncheck/anoncheck/internal/document"
	"github.com/anoncheck/anoncheck/internal/grammar"
	"github.com/anoncheck/anoncheck/internal/model"
	"github.com/anoncheck/anoncheck/internal/ner"
	"github.com/anoncheck/anoncheck/internal/wordlist"
	"github.com/anoncheck/anoncheck/internal/worker"
)

// Verifier runs the complete audit for one document at a time. It is
// safe for concurrent use by batch workers.
type Verifier struct {
	config     *model.Config
	checker    *grammar.Checker
	disallowed *wordlist.Set
	allowed    *wordlist.Set
	provider   ner.Provider
	nerCache   cache.Cache
	limiter    *worker.Limiter
}

// NewVerifier creates a verifier from configuration.
func NewVerifier(cfg *model.Config) (*Verifier, error) {
	oracle, err := conjugate.NewEnglishOracle()
	if err != nil {
		return nil, fmt.Errorf("load conjugation tables: %w", err)
	}

	disallowed, err := wordlist.LoadDisallowedWords(cfg.Lists.DisallowedWordsFile)
	if err != nil {
		return nil, fmt.Errorf("load disallowed words: %w", err)
	}

	allowed, err := wordlist.LoadAllowedEntities(cfg.Lists.AllowedEntitiesFile)
	if err != nil {
		return nil, fmt.Errorf("load allowed entities: %w", err)
	}

	nerConfig := ner.ConfigFromModel(cfg.NER)
	nerConfig.HTTPProxy = cfg.HTTP.HTTPProxy
	nerConfig.HTTPSProxy = cfg.HTTP.HTTPSProxy
	nerConfig.NoProxy = cfg.HTTP.NoProxy

	provider, err := ner.NewProvider(nerConfig)
	if err != nil {
		return nil, fmt.Errorf("initialize NER provider: %w", err)
	}

	var nerCache cache.Cache
	if provider != nil && cfg.Cache.Enabled {
		nerCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cacheDir(cfg.Cache.Dir), cfg.Cache.DiskTTL)
	}

	return &Verifier{
		config:     cfg,
		checker:    grammar.NewChecker(oracle),
		disallowed: disallowed,
		allowed:    allowed,
		provider:   provider,
		nerCache:   nerCache,
		limiter:    worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize),
	}, nil
}

// cacheDir resolves the disk cache location. An empty configured dir
// falls back to the user cache directory.
func cacheDir(configured string) string {
	if configured != "" {
		return configured
	}
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "anoncheck")
}

// CheckDocument runs all checks over the target and returns the report.
// A sentence with no recognized pronoun subject aborts the whole check,
// matching the strict audit contract: an unauditable sentence means the
// document cannot be declared clean.
func (v *Verifier) CheckDocument(ctx context.Context, target string) (*model.Report, error) {
	source, err := document.Open(target, v.config, v.limiter)
	if err != nil {
		return nil, err
	}

	paragraphs, err := source.Paragraphs(ctx)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	text := strings.Join(paragraphs, " ")

	log.Debug().
		Str("target", target).
		Str("kind", source.Kind()).
		Int("paragraphs", len(paragraphs)).
		Msg("document loaded")

	faultySet, err := v.checker.FindFaulty(text)
	if err != nil {
		return nil, fmt.Errorf("conjugation check: %w", err)
	}

	faulty := make([]string, 0, len(faultySet))
	for phrase := range faultySet {
		faulty = append(faulty, phrase)
	}
	sort.Strings(faulty)

	words := v.findDisallowedWords(text)

	report := &model.Report{
		Document:           target,
		Subject:            source.Name(),
		CheckedAt:          time.Now().UTC(),
		Source:             source.Kind(),
		FaultyConjugations: faulty,
		DisallowedWords:    words,
	}

	if v.provider != nil {
		entities, meta, err := v.recognizeEntities(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("entity check: %w", err)
		}
		report.NamedEntities = v.filterEntities(entities)
		report.NER = meta
	}

	report.Risk = summarizeRisk(report)

	if !report.Clean() {
		log.Info().
			Str("target", target).
			Int("conjugations", len(report.FaultyConjugations)).
			Int("words", len(report.DisallowedWords)).
			Int("entities", len(report.NamedEntities)).
			Str("risk", string(report.Risk.Level)).
			Msg("findings")
	}

	return report, nil
}

// findDisallowedWords returns word-list hits in order of first
// appearance, deduplicated case-insensitively.
func (v *Verifier) findDisallowedWords(text string) []string {
	var hits []string
	seen := make(map[string]bool)

	for _, token := range strings.Fields(text) {
		word := strings.Trim(token, ".,;:!?\"'()[]{}")
		if word == "" || !v.disallowed.Contains(word) {
			continue
		}
		key := strings.ToLower(word)
		if !seen[key] {
			seen[key] = true
			hits = append(hits, word)
		}
	}

	return hits
}

// recognizeEntities runs the NER provider, consulting the cache first.
func (v *Verifier) recognizeEntities(ctx context.Context, text string) ([]string, *model.NERMeta, error) {
	meta := &model.NERMeta{
		Provider: v.provider.Name(),
		Model:    v.config.NER.Model,
	}

	key := cache.Key(text)

	if v.nerCache != nil {
		if data, found := v.nerCache.Get(key); found {
			var entities []string
			if err := json.Unmarshal(data, &entities); err == nil {
				log.Debug().Str("key", key).Int("entities", len(entities)).Msg("NER cache hit")
				meta.FromCache = true
				meta.Entities = len(entities)
				return entities, meta, nil
			}
			// Corrupt entry: fall through to the provider
			_ = v.nerCache.Delete(key)
		}
	}

	entities, err := v.provider.Recognize(ctx, text)
	if err != nil {
		return nil, nil, err
	}

	if v.nerCache != nil {
		if data, err := json.Marshal(entities); err == nil {
			_ = v.nerCache.Set(key, data, 0)
		}
	}

	meta.Entities = len(entities)
	return entities, meta, nil
}

// filterEntities drops entities covered by the allow-list.
func (v *Verifier) filterEntities(entities []string) []string {
	var violations []string
	for _, entity := range entities {
		if !v.allowed.Contains(entity) {
			violations = append(violations, entity)
		}
	}
	return violations
}
