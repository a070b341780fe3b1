package markdown

import (
	"bytes"
	"contentkit/internal/domain/content"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"strings"
)

type Image struct {
	Src string
	Alt string
}

type Link struct {
	Href     string
	Text     string
	External bool
}

type CodeBlock struct {
	Language string
}

type Analysis struct {
	Words      int
	Headings   []content.Heading
	Images     []Image
	Links      []Link
	CodeBlocks []CodeBlock
}

type Analyzer struct {
	md goldmark.Markdown
}

// NewAnalyzer builds a parser-only pipeline; gfm enables tables, task
// lists, strikethrough and bare-URL linking.
func NewAnalyzer(gfm bool) *Analyzer {
	var exts []goldmark.Extender
	if gfm {
		exts = append(exts, extension.GFM)
	}
	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	return &Analyzer{md: md}
}

func (a *Analyzer) Analyze(src []byte) Analysis {
	ctx := parser.NewContext()
	reader := text.NewReader(src)
	doc := a.md.Parser().Parse(reader, parser.WithContext(ctx))

	var res Analysis
	var words strings.Builder

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				words.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			words.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				words.WriteByte(' ')
			}
		case *ast.String:
			words.Write(v.Value)
		case *ast.Heading:
			var idStr string
			if id, ok := v.AttributeString("id"); ok {
				switch x := id.(type) {
				case string:
					idStr = x
				case []byte:
					idStr = string(x)
				}
			}
			res.Headings = append(res.Headings, content.Heading{
				Level: v.Level,
				ID:    idStr,
				Text:  nodeText(v, src),
			})
		case *ast.Image:
			res.Images = append(res.Images, Image{
				Src: string(v.Destination),
				Alt: nodeText(v, src),
			})
		case *ast.Link:
			res.Links = append(res.Links, newLink(string(v.Destination), nodeText(v, src)))
		case *ast.AutoLink:
			u := string(v.URL(src))
			res.Links = append(res.Links, newLink(u, u))
			words.WriteString(u)
		case *ast.FencedCodeBlock:
			res.CodeBlocks = append(res.CodeBlocks, CodeBlock{Language: orText(string(v.Language(src)))})
			writeLines(&words, v, src)
		case *ast.CodeBlock:
			res.CodeBlocks = append(res.CodeBlocks, CodeBlock{Language: "text"})
			writeLines(&words, v, src)
		}
		return ast.WalkContinue, nil
	})

	res.Words = len(strings.Fields(words.String()))
	return res
}

func newLink(href, label string) Link {
	return Link{
		Href:     href,
		Text:     label,
		External: strings.HasPrefix(href, "http"),
	}
}

func orText(lang string) string {
	if lang == "" {
		return "text"
	}
	return lang
}

func writeLines(b *strings.Builder, n ast.Node, src []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(src))
		b.WriteByte(' ')
	}
}

// nodeText concatenates the text below n.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(src))
			if v.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}
