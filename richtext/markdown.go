package richtext

import (
	"strings"

	"fic/model"
)

// RenderMarkdown emite el campo narrativo como Markdown. Las líneas "table"
// consecutivas se agrupan en un solo bloque cercado para conservar el espacio
// tabular tal cual (no se reconstruyen tablas Markdown); "header" y "list" se
// prefijan; "bold" se envuelve en ** mediante el barrido de fronteras.
func RenderMarkdown(entry model.RichTextEntry) string {
	lines := SplitLines(entry)

	var sb strings.Builder
	var tableBuffer []string
	flushTable := func() {
		if len(tableBuffer) == 0 {
			return
		}
		sb.WriteString("```\n")
		for _, row := range tableBuffer {
			sb.WriteString(row)
			sb.WriteString("\n")
		}
		sb.WriteString("```\n")
		tableBuffer = nil
	}

	for _, line := range lines {
		if line.BlockTags[TagTable] {
			tableBuffer = append(tableBuffer, line.Text)
			continue
		}
		flushTable()

		text := applyBoldMarkers(line.Text, line.InlineTags)
		switch {
		case line.BlockTags[TagHeader]:
			sb.WriteString("### ")
		case line.BlockTags[TagList]:
			sb.WriteString("- ")
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	flushTable()

	return strings.TrimSuffix(sb.String(), "\n")
}

func applyBoldMarkers(text string, inline []TagRange) string {
	boundaries := boldBoundaries(len(text), inline)
	if len(boundaries) == 0 {
		return text
	}
	var sb strings.Builder
	prev := 0
	for _, pos := range boundaries {
		sb.WriteString(text[prev:pos])
		sb.WriteString("**")
		prev = pos
	}
	sb.WriteString(text[prev:])
	return sb.String()
}
