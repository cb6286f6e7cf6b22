package tui

import (
	"fmt"
	"strings"

	"github.com/yumyai/panres/pkg/explorer"
)

// TreeLine is the text of one tree row without cursor decoration.
func TreeLine(row explorer.Row) string {
	indent := strings.Repeat("  ", row.Depth)
	switch {
	case row.Loading:
		return indent + "  loading..."
	case row.Err != nil:
		return indent + "  ! " + row.Err.Error()
	case row.Empty:
		return indent + "  (no children)"
	}

	marker := "  "
	switch {
	case row.Expandable && row.Expanded:
		marker = "▾ "
	case row.Expandable:
		marker = "▸ "
	case row.Node.Kind() == explorer.KindIndividual:
		marker = "· "
	}
	return indent + marker + row.Node.Label()
}

// RenderTree draws the visible tree as plain text. The selected node is
// marked with '*'.
func RenderTree(rows []explorer.Row) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(TreeLine(row))
		if row.Selected {
			b.WriteString(" *")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// linkFunc formats the n-th followable link of a detail view.
type linkFunc func(n int, l explorer.CrossLink) string

func plainLink(_ int, l explorer.CrossLink) string {
	if l.Internal {
		return l.Label
	}
	return fmt.Sprintf("%s <%s>", l.Label, l.Href)
}

// DetailLinks lists the followable links of a view in display order.
func DetailLinks(view *explorer.DetailView) []explorer.CrossLink {
	var links []explorer.CrossLink
	detailLines(view, func(_ int, l explorer.CrossLink) string {
		links = append(links, l)
		return ""
	}, func(s string) string { return s })
	return links
}

// detailLines lays out a view. Every link passes through link with its
// position among the followable links.
func detailLines(view *explorer.DetailView, link linkFunc, heading func(string) string) []string {
	var lines []string
	n := 0
	next := func(l explorer.CrossLink) string {
		s := link(n, l)
		n++
		return s
	}

	kind := string(view.Kind)
	if kind == "" {
		kind = "node"
	}
	lines = append(lines, fmt.Sprintf("%s [%s]", view.Label, kind), view.ID)
	if view.Description != "" {
		lines = append(lines, "", view.Description)
	}
	if view.Fallback {
		return lines
	}

	section := func(title string, links []explorer.CrossLink) {
		if len(links) == 0 {
			return
		}
		lines = append(lines, "", heading(title))
		for _, l := range links {
			lines = append(lines, "  "+next(l))
		}
	}

	switch view.Kind {
	case explorer.KindClass:
		section("Super classes", view.Parents)
		section("Sub classes", view.SubClasses)
		section("Instances", view.Instances)
	case explorer.KindIndividual:
		section("Types", view.Types)
		if len(view.Properties) > 0 {
			lines = append(lines, "", heading("Properties"))
		}
		for _, row := range view.Properties {
			values := make([]string, 0, len(row.Values))
			for _, v := range row.Values {
				if !v.IsLiteral() {
					values = append(values, next(*v.Ref))
					continue
				}
				s := v.Literal
				if v.Datatype != nil {
					s += " (" + v.Datatype.Label + ")"
				}
				values = append(values, s)
			}
			lines = append(lines, "  "+row.Property.Label+": "+strings.Join(values, ", "))
		}
	}
	return lines
}

// RenderDetail draws a view as plain text. Outbound links show their
// target in angle brackets.
func RenderDetail(view *explorer.DetailView) string {
	lines := detailLines(view, plainLink, func(s string) string { return s + ":" })
	return strings.Join(lines, "\n") + "\n"
}
