package richtext

import (
	"strings"

	"fic/model"
)

// DocumentWriter es el contrato mínimo de escritura que el renderizador asume
// del backend de documentos; docio lo implementa para Word.
type DocumentWriter interface {
	AddHeading(text string, level int)
	AddParagraph(style string) RunWriter
}

// RunWriter recibe los tramos de texto de un párrafo.
type RunWriter interface {
	AddRun(text string, bold bool)
}

// Estilos de párrafo que el renderizador solicita al backend.
const (
	StyleNormal     = ""
	StyleListBullet = "List Bullet"
	StyleMonospace  = "Monospace"
)

// RenderDocument vuelca el campo narrativo sobre el documento: las líneas
// "table" agrupadas como un solo párrafo monoespaciado, "header" como título,
// "list" como viñeta, y los tramos en negrita como runs separados usando el
// mismo barrido de profundidad que el renderizador Markdown.
func RenderDocument(doc DocumentWriter, entry model.RichTextEntry) {
	lines := SplitLines(entry)

	var tableBuffer []string
	flushTable := func() {
		if len(tableBuffer) == 0 {
			return
		}
		paragraph := doc.AddParagraph(StyleMonospace)
		paragraph.AddRun(strings.Join(tableBuffer, "\n"), false)
		tableBuffer = nil
	}

	for _, line := range lines {
		if line.BlockTags[TagTable] {
			tableBuffer = append(tableBuffer, line.Text)
			continue
		}
		flushTable()

		switch {
		case line.BlockTags[TagHeader]:
			doc.AddHeading(line.Text, 3)
		case line.BlockTags[TagList]:
			writeRuns(doc.AddParagraph(StyleListBullet), line)
		default:
			writeRuns(doc.AddParagraph(StyleNormal), line)
		}
	}
	flushTable()
}

// writeRuns corta la línea en tramos alternando negrita en cada frontera.
// Un tramo está en negrita mientras la profundidad del barrido sea positiva,
// así los rangos solapados no duplican el formato.
func writeRuns(paragraph RunWriter, line Line) {
	boundaries := boldBoundaries(len(line.Text), line.InlineTags)
	if len(boundaries) == 0 {
		paragraph.AddRun(line.Text, false)
		return
	}

	bold := false
	prev := 0
	for _, pos := range boundaries {
		if pos > prev {
			paragraph.AddRun(line.Text[prev:pos], bold)
		}
		bold = !bold
		prev = pos
	}
	if prev < len(line.Text) {
		paragraph.AddRun(line.Text[prev:], bold)
	}
}
