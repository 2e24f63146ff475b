package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/harrison/reqlint/internal/models"
)

// DefaultPriority is assigned to extracted requirements unless the
// frontmatter sets another
const DefaultPriority = "M"

// functionalMarker starts a user story
const functionalMarker = "As a"

// MarkdownParser turns free-form Markdown into requirement records.
//
// Headings set the category of the records that follow them. Every paragraph
// and every top-level list item becomes one record with a sequential id.
// Statements containing "As a" are functional, everything else is
// non-functional. Items nested under a functional list item become its
// acceptance criteria; nested items under a non-functional item become
// records of their own. Code blocks and HTML blocks are ignored. Optional
// YAML frontmatter may set the default category and priority.
type MarkdownParser struct {
	markdown goldmark.Markdown
}

// NewMarkdownParser creates a parser with the default goldmark configuration
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{
		markdown: goldmark.New(),
	}
}

// Parse reads Markdown from r and extracts requirement records
func (p *MarkdownParser) Parse(r io.Reader) (*models.RequirementSet, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	ex := &extraction{priority: DefaultPriority}

	content, frontmatter := extractFrontmatter(content)
	if frontmatter != nil {
		var fm markdownFrontmatter
		if err := yaml.Unmarshal(frontmatter, &fm); err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
		ex.category = strings.TrimSpace(fm.Category)
		if prio := strings.TrimSpace(fm.Priority); prio != "" {
			ex.priority = prio
		}
	}

	ex.source = content
	ex.walkBlocks(p.markdown.Parser().Parse(text.NewReader(content)))

	return &models.RequirementSet{Requirements: ex.reqs}, nil
}

// markdownFrontmatter holds the document-level defaults
type markdownFrontmatter struct {
	Category string `yaml:"category"`
	Priority string `yaml:"priority"`
}

// extraction accumulates records while walking the document
type extraction struct {
	source   []byte
	category string
	priority string
	reqs     []models.Requirement
}

func (ex *extraction) walkBlocks(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			ex.category = inlineText(node, ex.source)
		case *ast.Paragraph, *ast.TextBlock:
			ex.add(inlineText(node, ex.source))
		case *ast.List:
			ex.walkList(node)
		case *ast.Blockquote:
			ex.walkBlocks(node)
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.ThematicBreak:
			// not requirement statements
		}
	}
}

func (ex *extraction) walkList(list *ast.List) {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		statement, nested := splitListItem(item, ex.source)
		idx := ex.add(statement)
		if len(nested) == 0 {
			continue
		}

		if idx >= 0 && ex.reqs[idx].Kind == models.KindFunctional {
			for _, sub := range nested {
				ex.reqs[idx].Acceptance = append(ex.reqs[idx].Acceptance, listItemTexts(sub, ex.source)...)
			}
			continue
		}

		for _, sub := range nested {
			ex.walkList(sub)
		}
	}
}

// add appends a record for statement and returns its index, or -1 when the
// statement is blank
func (ex *extraction) add(statement string) int {
	statement = strings.TrimSpace(statement)
	if statement == "" {
		return -1
	}

	kind := models.KindNonFunctional
	if strings.Contains(statement, functionalMarker) {
		kind = models.KindFunctional
	}

	ex.reqs = append(ex.reqs, models.Requirement{
		ID:         fmt.Sprintf("R%03d", len(ex.reqs)+1),
		Kind:       kind,
		Text:       statement,
		Priority:   ex.priority,
		Category:   ex.category,
		Acceptance: []string{},
	})
	return len(ex.reqs) - 1
}

// splitListItem returns the item's own text and any lists nested in it
func splitListItem(item ast.Node, source []byte) (string, []*ast.List) {
	var parts []string
	var nested []*ast.List
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		switch child := c.(type) {
		case *ast.List:
			nested = append(nested, child)
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		default:
			if t := strings.TrimSpace(inlineText(child, source)); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, " "), nested
}

// listItemTexts flattens a list, including deeper nesting, into item texts
func listItemTexts(list *ast.List, source []byte) []string {
	var texts []string
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		statement, nested := splitListItem(item, source)
		if statement != "" {
			texts = append(texts, statement)
		}
		for _, sub := range nested {
			texts = append(texts, listItemTexts(sub, source)...)
		}
	}
	return texts
}

// inlineText extracts plain text from a node's inline children. Soft and
// hard line breaks become single spaces.
func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	writeInline(&buf, n, source)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func writeInline(buf *bytes.Buffer, n ast.Node, source []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.AutoLink:
			buf.Write(node.URL(source))
		case *ast.RawHTML:
		default:
			writeInline(buf, node, source)
		}
	}
}

// extractFrontmatter splits a leading "---" delimited YAML block from the body
func extractFrontmatter(content []byte) ([]byte, []byte) {
	lines := bytes.Split(content, []byte("\n"))
	if len(lines) < 3 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return content, nil
	}

	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			frontmatter := bytes.Join(lines[1:i], []byte("\n"))
			body := bytes.Join(lines[i+1:], []byte("\n"))
			return body, frontmatter
		}
	}

	return content, nil
}
