package cheesyblog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"go.abhg.dev/goldmark/frontmatter"
)

type MarkdownParserFunc func(input []byte) (*Post, error)

// DefaultMarkdownParser returns a MarkdownParserFunc that uses the default goldmark parser with the following extensions:
// - GFM
// - Typographer
// - Frontmatter (YAML and TOML)
func DefaultMarkdownParser() MarkdownParserFunc {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	return func(input []byte) (*Post, error) {
		return MarkdownToPost(md, input)
	}
}

// MarkdownToPost converts markdown content to a Post. The frontmatter provides the post fields and the rendered
// body becomes the description.
func MarkdownToPost(md goldmark.Markdown, content []byte) (*Post, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("failed to convert markdown: %w", err)
	}

	data := frontmatter.Get(ctx)
	if data == nil {
		return nil, fmt.Errorf("%w: missing frontmatter", ErrInvalidPostMeta)
	}

	meta := PostMeta{}
	if err := data.Decode(&meta); err != nil {
		return nil, fmt.Errorf("failed to decode frontmatter: %w", err)
	}

	if err := meta.Validate(); err != nil {
		return nil, err
	}

	return &Post{
		ID:          meta.ID,
		Title:       meta.Title,
		Image:       meta.Image,
		Date:        meta.Date,
		Comments:    []string{},
		Description: strings.TrimSpace(buf.String()),
	}, nil
}

// LoadSeedDir reads every markdown file in dir and returns the posts ordered by id.
func LoadSeedDir(markdownParser MarkdownParserFunc, dir string) ([]Post, error) {
	if markdownParser == nil {
		markdownParser = DefaultMarkdownParser()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed directory: %w", err)
	}

	var posts []Post
	seen := make(map[int]string)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}

		post, err := markdownParser(file)
		if err != nil {
			return nil, fmt.Errorf("error processing markdown file %s: %w", path, err)
		}

		if other, ok := seen[post.ID]; ok {
			return nil, fmt.Errorf("%w: %d in %s and %s", ErrDuplicatePostID, post.ID, other, entry.Name())
		}
		seen[post.ID] = entry.Name()

		posts = append(posts, *post)
	}

	slices.SortFunc(posts, func(a, b Post) int {
		return a.ID - b.ID
	})

	return posts, nil
}
