package controller

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"brack.dev/pkg/brack/internal/domain/parser"
	m "brack.dev/pkg/brack/internal/model"
)

func renderTokens(tokens []m.Token) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Position", "Kind", "Token"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, tok := range tokens {
		table.Append([]string{tok.Position.String(), tok.Kind.String(), tok.String()})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Tokens %d", len(tokens)), "", ""})
	table.Render()

	return buf.String()
}

func renderTree(tree *m.SyntaxTree, styles Styles) (string, error) {
	var buf bytes.Buffer

	err := parser.Fprint(&buf, tree, parser.WithMarkerStyle(styles.Marker), parser.WithKindStyle(styles.Kind))
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// renderDiagnostic formats one diagnostic as
//
//	file:line:col:	error: message
//		offending-text
//		help: help text
func renderDiagnostic(b *strings.Builder, d m.Diagnostic, styles Styles) {
	fmt.Fprintf(b, "%s:\t%s: %s\n", d.Position, styles.Level(d.Level), d.Message)

	if d.Text != "" {
		fmt.Fprintf(b, "\t%s\n", d.Text)
	}

	if d.Help != "" {
		fmt.Fprintf(b, "\t%s %s\n", styles.Help("help:"), d.Help)
	}
}

func renderCounters(b *strings.Builder, errors, warnings, infos int, styles Styles) {
	fmt.Fprintf(b, "#Errors: %s\n", count(errors, styles))
	fmt.Fprintf(b, "#Warnings: %s\n", count(warnings, styles))
	fmt.Fprintf(b, "#Infos: %s\n", count(infos, styles))
}

func count(n int, styles Styles) string {
	if n == 0 {
		return styles.Muted("0")
	}

	return fmt.Sprintf("%d", n)
}

// renderDiagnostics renders diags followed by the level counters. Nothing
// is rendered for an empty list.
func renderDiagnostics(diags m.Diagnostics, styles Styles) string {
	if len(diags) == 0 {
		return ""
	}

	var b strings.Builder

	for _, d := range diags {
		renderDiagnostic(&b, d, styles)
	}

	renderCounters(&b, diags.Count(m.LevelError), diags.Count(m.LevelWarning), diags.Count(m.LevelInfo), styles)

	return b.String()
}

func renderReports(reports []m.Report, styles Styles) string {
	var b strings.Builder

	for _, r := range reports {
		for _, d := range r.Diagnostics {
			renderDiagnostic(&b, d, styles)
		}

		if r.Err != "" && len(r.Diagnostics) == 0 {
			fmt.Fprintf(&b, "%s:\t%s: %s\n", r.Path, styles.Level(m.LevelError), r.Err)
		}
	}

	if b.Len() > 0 {
		b.WriteString("\n")
	}

	b.WriteString(renderSummaryTable(reports))

	sum := m.Summarize(reports)
	if sum.Errors+sum.Warnings+sum.Infos > 0 {
		renderCounters(&b, sum.Errors, sum.Warnings, sum.Infos, styles)
	}

	return b.String()
}

func renderSummaryTable(reports []m.Report) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Path", "Tokens", "Nodes", "Errors", "Warnings", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_CENTER,
	})

	for _, r := range reports {
		table.Append([]string{
			string(r.Path),
			fmt.Sprintf("%d", r.Tokens),
			fmt.Sprintf("%d", r.Nodes),
			fmt.Sprintf("%d", r.Diagnostics.Count(m.LevelError)),
			fmt.Sprintf("%d", r.Diagnostics.Count(m.LevelWarning)),
			r.Status().String(),
		})
	}

	sum := m.Summarize(reports)
	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", sum.Files),
		"", "",
		fmt.Sprintf("%d", sum.Errors),
		fmt.Sprintf("%d", sum.Warnings),
		fmt.Sprintf("%d failed", sum.Failed),
	})

	table.Render()

	return buf.String()
}
