package report

import (
	"strings"

	"fic/casedata"
	"fic/docio"
	"fic/richtext"
)

// docWriter adapta docio.Document al contrato de escritura del renderizador
// de texto enriquecido.
type docWriter struct {
	doc *docio.Document
}

func (w docWriter) AddHeading(text string, level int) {
	w.doc.AddHeading(text, level)
}

func (w docWriter) AddParagraph(style string) richtext.RunWriter {
	return w.doc.AddParagraph(style)
}

// BuildWord arma el informe completo como documento Word y lo guarda en path.
func BuildWord(cd *casedata.CaseData, path string) error {
	ctx := BuildContext(cd)
	doc := docio.NewDocument()
	writer := docWriter{doc: doc}

	for _, line := range ctx.HeaderLines() {
		doc.AddParagraphText(line)
	}
	doc.AddParagraphText("")

	addNarrative := func(title, key string) {
		doc.AddHeading(title, 2)
		entry, ok := ctx.Analisis[key]
		if !ok || strings.TrimSpace(entry.Text) == "" {
			doc.AddParagraphText("Pendiente")
		} else {
			richtext.RenderDocument(writer, entry)
		}
		doc.AddParagraphText("")
	}

	addTable := func(title string, headers []string, rows [][]string) {
		doc.AddHeading(title, 2)
		if len(rows) == 0 {
			doc.AddParagraphText("Sin registros.")
			doc.AddParagraphText("")
			return
		}
		table := doc.AddTable(1, len(headers))
		for i, header := range headers {
			table.SetCell(0, i, header)
		}
		for _, row := range rows {
			index := table.AddRow()
			for i, value := range row {
				table.SetCell(index, i, value)
			}
		}
		doc.AddParagraphText("")
	}

	addNarrative("1. Antecedentes", "antecedentes")
	addTable("2. Tabla de clientes", clientHeaders, ctx.ClientRows)
	addTable("3. Tabla de team members involucrados", teamHeaders, ctx.TeamRows)
	addTable("4. Tabla de productos combinado", productHeaders, ctx.ProductRows)
	doc.AddHeading("5. Resumen automatizado", 2)
	doc.AddParagraphText(ctx.SummarySentence)
	doc.AddParagraphText("")
	addNarrative("6. Modus Operandi", "modus_operandi")
	addNarrative("7. Hallazgos Principales", "hallazgos")
	addNarrative("8. Descargo de colaboradores", "descargos")
	addTable("9. Tabla de riesgos identificados", riskHeaders, ctx.RiskRows)
	addTable("10. Tabla de normas transgredidas", normHeaders, ctx.NormRows)
	addNarrative("11. Conclusiones", "conclusiones")
	addNarrative("12. Recomendaciones y mejoras de procesos", "recomendaciones")
	if len(ctx.OperationRows) > 0 {
		addTable("13. Operaciones relevantes", operationHeaders, ctx.OperationRows)
	}
	if len(ctx.AnexoRows) > 0 {
		addTable("14. Anexos", anexoHeaders, ctx.AnexoRows)
	}
	for _, firma := range ctx.Firmas {
		doc.AddParagraphText(firma.Nombre)
		doc.AddParagraphText(firma.Cargo)
		doc.AddParagraphText("")
	}

	return doc.Save(path)
}
