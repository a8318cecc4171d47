package exporter

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"drecli/internal/dre"
)

// Report gathers everything a full DRE report shows.
type Report struct {
	Title    string
	Periods  []string
	Base     string
	Views    []*dre.DerivedView
	Measures []dre.Measure
}

// Markdown lays the report out as GitHub-flavoured markdown: the overview
// totals first, then one section per category with its table and headline
// statistics.
func (r Report) Markdown(style Style) string {
	var b strings.Builder

	title := r.Title
	if title == "" {
		title = "DRE"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(r.Periods) > 0 {
		fmt.Fprintf(&b, "Períodos: %s\n\n", strings.Join(r.Periods, ", "))
	}

	if len(r.Measures) > 0 {
		fmt.Fprintf(&b, "## Visão geral\n\n")
		if r.Base != "" {
			fmt.Fprintf(&b, "Base: `%s`\n\n", r.Base)
		}
		headers, records := MeasureRecords(r.Measures, style)
		writeMarkdownTable(&b, headers, records)
	}

	for _, view := range r.Views {
		name := view.Category.Title
		if name == "" {
			name = view.Category.Name
		}
		fmt.Fprintf(&b, "## %s\n\n", name)

		if view.Table.Width() == 0 {
			b.WriteString("Sem valores no período.\n\n")
		} else {
			headers, records := DerivedViewRecords(view, style)
			writeMarkdownTable(&b, headers, records)
		}

		if len(view.Pruned) > 0 {
			fmt.Fprintf(&b, "Contas zeradas: %s\n\n", strings.Join(view.Pruned, ", "))
		}

		headers, records := StatisticsRecords([]dre.StatisticsRecord{view.Statistics}, style)
		writeMarkdownTable(&b, headers, records)
	}

	return b.String()
}

func writeMarkdownTable(b *strings.Builder, headers []string, records [][]string) {
	writeMarkdownRow(b, headers)
	b.WriteString("|")
	for range headers {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, record := range records {
		writeMarkdownRow(b, record)
	}
	b.WriteString("\n")
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, cell := range cells {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(cell, "|", `\|`))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// RenderHTML converts a markdown report into a standalone HTML page.
func RenderHTML(title, source string) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(source), &body); err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html lang=\"pt-BR\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n",
		html.EscapeString(title))
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// RenderTerminal renders a markdown report for a terminal, wrapping at
// width columns. It uses the plain ASCII style so output is stable without a
// TTY.
func RenderTerminal(source string, width int) (string, error) {
	if width <= 0 {
		width = 120
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("ascii"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	out, err := r.Render(source)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}
