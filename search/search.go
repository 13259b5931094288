package search

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/char/html"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/hypergopher/cheesyblog"
)

const (
	docType      = "post"
	htmlAnalyzer = "post_html"
)

// Index is an in-memory full-text index over blog posts
type Index struct {
	bleveIndex bleve.Index
	logger     *slog.Logger
}

// New creates an empty Index
func New(logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	indexMapping, err := defineMapping()
	if err != nil {
		return nil, err
	}

	index, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	return &Index{bleveIndex: index, logger: logger}, nil
}

func defineMapping() (*mapping.IndexMappingImpl, error) {
	indexMapping := bleve.NewIndexMapping()

	// Descriptions are rendered HTML, markup is stripped before tokenizing
	err := indexMapping.AddCustomAnalyzer(htmlAnalyzer, map[string]any{
		"type":          custom.Name,
		"char_filters":  []string{html.Name},
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name, en.StopName},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add html analyzer: %w", err)
	}

	descriptionMapping := bleve.NewTextFieldMapping()
	descriptionMapping.Analyzer = htmlAnalyzer

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("title", bleve.NewTextFieldMapping())
	docMapping.AddFieldMappingsAt("description", descriptionMapping)
	docMapping.AddFieldMappingsAt("comments", bleve.NewTextFieldMapping())
	docMapping.AddFieldMappingsAt("date", bleve.NewTextFieldMapping())

	indexMapping.AddDocumentMapping(docType, docMapping)
	indexMapping.DefaultType = docType
	return indexMapping, nil
}

// Sync indexes every post and removes posts that are no longer present
func (idx *Index) Sync(posts []cheesyblog.Post) error {
	batch := idx.bleveIndex.NewBatch()
	keep := make(map[string]struct{}, len(posts))

	for _, post := range posts {
		id := strconv.Itoa(post.ID)
		keep[id] = struct{}{}
		if err := batch.Index(id, document(post)); err != nil {
			return fmt.Errorf("failed to index post %d: %w", post.ID, err)
		}
	}

	stale, err := idx.indexedIDs()
	if err != nil {
		return err
	}
	for _, id := range stale {
		if _, ok := keep[id]; !ok {
			batch.Delete(id)
		}
	}

	if err := idx.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to apply index batch: %w", err)
	}

	idx.logger.Debug("synced search index", slog.Int("posts", len(posts)))
	return nil
}

// Search returns the ids of all posts matching query, best match first
func (idx *Index) Search(query string) ([]int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	count, err := idx.bleveIndex.DocCount()
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	request := bleve.NewSearchRequestOptions(bleve.NewQueryStringQuery(query), int(count), 0, false)
	result, err := idx.bleveIndex.Search(request)
	if err != nil {
		return nil, fmt.Errorf("error searching for posts: %w", err)
	}

	ids := make([]int, 0, len(result.Hits))
	for _, hit := range result.Hits {
		id, err := strconv.Atoi(hit.ID)
		if err != nil {
			idx.logger.Warn("skipping hit with invalid id", slog.String("id", hit.ID))
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Close closes the index
func (idx *Index) Close() error {
	return idx.bleveIndex.Close()
}

func (idx *Index) indexedIDs() ([]string, error) {
	count, err := idx.bleveIndex.DocCount()
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	request := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), int(count), 0, false)
	result, err := idx.bleveIndex.Search(request)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

func document(post cheesyblog.Post) map[string]any {
	return map[string]any{
		"title":       post.Title,
		"description": post.Description,
		"comments":    strings.Join(post.Comments, "\n"),
		"date":        post.Date,
	}
}
