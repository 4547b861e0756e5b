package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// Markdown renders the outline as a Markdown document: one section per
// slide, nested bullet lists for category hierarchies and a numbered list
// of SmartArt node texts.
func (o *Outline) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", escape(o.Title))
	if len(o.Slides) == 0 {
		b.WriteString("\nNo charts or SmartArt found.\n")
		return b.String()
	}

	for _, s := range o.Slides {
		fmt.Fprintf(&b, "\n## Slide %d\n", s.Number)
		for _, c := range s.Charts {
			fmt.Fprintf(&b, "\n### Chart: %s\n", escape(c.Shape))
			for _, p := range c.Plots {
				fmt.Fprintf(&b, "\n%s, %d series, %d categories, depth %d\n\n", p.Kind, p.Series, p.Count, p.Depth)
				writeCategories(&b, p.Categories, 0)
			}
		}
		for _, sa := range s.SmartArts {
			fmt.Fprintf(&b, "\n### SmartArt: %s\n\n", escape(sa.Shape))
			for i, n := range sa.Nodes {
				fmt.Fprintf(&b, "%d. %s\n", i+1, label(n.Text))
			}
			fmt.Fprintf(&b, "\n%d connections, %d drawing caches\n", sa.Connections, sa.Drawings)
		}
	}
	return b.String()
}

func writeCategories(b *strings.Builder, nodes []*CategoryNode, depth int) {
	for _, n := range nodes {
		fmt.Fprintf(b, "%s- %s\n", strings.Repeat("  ", depth), label(n.Label))
		writeCategories(b, n.Children, depth+1)
	}
}

func label(s string) string {
	if s == "" {
		return "_(empty)_"
	}
	return escape(s)
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`, `[`, `\[`, `]`, `\]`,
	`#`, `\#`, `<`, `\<`, `>`, `\>`, `!`, `\!`, `|`, `\|`, "\n", " ",
)

func escape(s string) string {
	return mdEscaper.Replace(s)
}

// HTML renders the Markdown form of the outline with goldmark. Raw HTML in
// labels is escaped, never passed through.
func (o *Outline) HTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(o.Markdown()), &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
