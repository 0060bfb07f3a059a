// Package search provides full-text search over every rendered template.
//
// The index is built in memory once at startup from the language registry:
// one document per (language, format, section).
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/sha1n/mcp-arc42-server/internal/domain"
	"github.com/sha1n/mcp-arc42-server/internal/format"
	"github.com/sha1n/mcp-arc42-server/internal/language"
)

const (
	// DefaultMaxResults bounds the hits returned by a search.
	DefaultMaxResults = 10

	// MaxBatchSize is the maximum number of documents per index batch.
	MaxBatchSize = 100

	titleBoost = 3.0
)

// ErrEmptyQuery indicates a search without query text.
var ErrEmptyQuery = errors.New("query cannot be empty")

// Index is a read-only in-memory template index.
type Index struct {
	index bleve.Index
	size  int
}

// CreateIndexMapping creates the Bleve mapping for template documents.
func CreateIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	contentField := bleve.NewTextFieldMapping()
	contentField.Analyzer = standard.Name
	contentField.Store = true
	contentField.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt(domain.TemplateFieldContent, contentField)

	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = standard.Name
	titleField.Store = true
	docMapping.AddFieldMappingsAt(domain.TemplateFieldTitle, titleField)

	for _, name := range []string{domain.TemplateFieldLanguage, domain.TemplateFieldFormat, domain.TemplateFieldSection} {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = keyword.Name
		f.Store = true
		docMapping.AddFieldMappingsAt(name, f)
	}

	idField := bleve.NewTextFieldMapping()
	idField.Index = false
	idField.Store = true
	docMapping.AddFieldMappingsAt(domain.TemplateFieldID, idField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = standard.Name

	return indexMapping
}

// Build renders every template of every registered language in the given
// formats and indexes them.
func Build(languages *language.Registry, formats []format.Code, logger *slog.Logger) (idx *Index, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	index, err := bleve.NewMemOnly(CreateIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	defer func() {
		if err != nil {
			_ = index.Close()
		}
	}()

	batch := index.NewBatch()
	total := 0

	for _, code := range languages.AvailableCodes() {
		ls, _ := languages.Get(string(code))
		for _, fc := range formats {
			for _, section := range domain.Sections {
				content, err := ls.Template(section, fc)
				if err != nil {
					return nil, fmt.Errorf("failed to render %s/%s/%s: %w", code, fc, section, err)
				}

				doc := domain.TemplateDocument{
					ID:       domain.TemplateDocumentID(string(code), string(fc), section),
					Language: string(code),
					Format:   string(fc),
					Section:  string(section),
					Title:    ls.SectionTitle(section).Text,
					Content:  content,
				}
				if err := batch.Index(doc.ID, doc); err != nil {
					return nil, fmt.Errorf("failed to index %s: %w", doc.ID, err)
				}
				total++

				if batch.Size() >= MaxBatchSize {
					if err := index.Batch(batch); err != nil {
						return nil, fmt.Errorf("failed to execute batch: %w", err)
					}
					batch = index.NewBatch()
				}
			}
		}
	}

	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			return nil, fmt.Errorf("failed to execute final batch: %w", err)
		}
	}

	logger.Info("Template index built", "documents", total, "duration", time.Since(start))
	return &Index{index: index, size: total}, nil
}

// Request is a search query with optional filters. Filters hold canonical codes.
type Request struct {
	Query    string
	Language language.Code
	Format   format.Code
	Size     int
}

// Hit is one matching template.
type Hit struct {
	ID        string
	Language  string
	Format    string
	Section   domain.Section
	Title     string
	Score     float64
	Fragments []string
}

// Results holds the hits of a search and the total match count.
type Results struct {
	Total uint64
	Hits  []Hit
}

// Search runs req against the index.
func (i *Index) Search(ctx context.Context, req Request) (*Results, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}

	size := req.Size
	if size <= 0 {
		size = DefaultMaxResults
	}

	searchReq := bleve.NewSearchRequest(buildQuery(req))
	searchReq.Size = size
	searchReq.Fields = []string{
		domain.TemplateFieldLanguage,
		domain.TemplateFieldFormat,
		domain.TemplateFieldSection,
		domain.TemplateFieldTitle,
	}
	searchReq.Highlight = bleve.NewHighlight()
	searchReq.Highlight.AddField(domain.TemplateFieldContent)

	res, err := i.index.SearchInContext(ctx, searchReq)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := &Results{Total: res.Total}
	for _, h := range res.Hits {
		hit := Hit{
			ID:        h.ID,
			Language:  stringField(h.Fields, domain.TemplateFieldLanguage),
			Format:    stringField(h.Fields, domain.TemplateFieldFormat),
			Section:   domain.Section(stringField(h.Fields, domain.TemplateFieldSection)),
			Title:     stringField(h.Fields, domain.TemplateFieldTitle),
			Score:     h.Score,
			Fragments: h.Fragments[domain.TemplateFieldContent],
		}
		results.Hits = append(results.Hits, hit)
	}
	return results, nil
}

// Size returns the number of indexed documents.
func (i *Index) Size() int {
	return i.size
}

// Close releases the index.
func (i *Index) Close() error {
	return i.index.Close()
}

// buildQuery matches content and, boosted, titles; filters are conjunctive.
func buildQuery(req Request) query.Query {
	contentQuery := bleve.NewMatchQuery(req.Query)
	contentQuery.SetField(domain.TemplateFieldContent)

	titleQuery := bleve.NewMatchQuery(req.Query)
	titleQuery.SetField(domain.TemplateFieldTitle)
	titleQuery.SetBoost(titleBoost)

	searchQuery := bleve.NewDisjunctionQuery(contentQuery, titleQuery)

	if req.Language == "" && req.Format == "" {
		return searchQuery
	}

	must := []query.Query{searchQuery}
	if req.Language != "" {
		q := bleve.NewTermQuery(string(req.Language))
		q.SetField(domain.TemplateFieldLanguage)
		must = append(must, q)
	}
	if req.Format != "" {
		q := bleve.NewTermQuery(string(req.Format))
		q.SetField(domain.TemplateFieldFormat)
		must = append(must, q)
	}
	return bleve.NewConjunctionQuery(must...)
}

func stringField(fields map[string]any, name string) string {
	if v, ok := fields[name].(string); ok {
		return v
	}
	return ""
}
