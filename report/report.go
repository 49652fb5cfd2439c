// Package report arma el informe del caso en Markdown y Word a partir del
// caso normalizado. Ambos formatos comparten el mismo contexto intermedio
// para que las cifras y tablas no diverjan entre salidas.
package report

import (
	"fmt"
	"sort"
	"strings"

	"fic/casedata"
	"fic/model"
	"fic/richtext"
	"fic/validators"
)

// Context reúne los datos derivados que consumen ambos renderizadores.
type Context struct {
	Caso              model.Caso
	Analisis          map[string]model.RichTextEntry
	TotalInvestigado  float64
	DestinatariosText string
	ClientRows        [][]string
	TeamRows          [][]string
	ProductRows       [][]string
	RiskRows          [][]string
	NormRows          [][]string
	OperationRows     [][]string
	AnexoRows         [][]string
	Firmas            []model.Firma
	SummarySentence   string
}

var (
	clientHeaders = []string{"Cliente", "Tipo ID", "ID", "Flag", "Teléfonos", "Correos", "Direcciones", "Accionado"}
	teamHeaders   = []string{"Colaborador", "ID", "Flag", "División", "Área", "Servicio", "Puesto", "Agencia", "Código", "Falta", "Sanción"}
	productHeaders = []string{"Registro", "ID", "Cliente", "Tipo", "Canal", "Proceso", "Cat.1", "Cat.2", "Modalidad", "Montos", "Reclamo/Analítica"}
	riskHeaders   = []string{"ID Riesgo", "Líder", "Criticidad", "Exposición US$", "Planes"}
	normHeaders   = []string{"N° de norma", "Descripción", "Fecha de vigencia"}
	operationHeaders = []string{"Operación", "Fecha", "Monto", "Descripción"}
	anexoHeaders  = []string{"Anexo", "Descripción", "Ruta"}
)

// BuildContext deriva destinatarios, totales y filas de tabla del caso.
func BuildContext(cd *casedata.CaseData) *Context {
	ctx := &Context{
		Caso:     cd.Caso,
		Analisis: cd.Analisis,
	}

	for _, product := range cd.Productos {
		ctx.TotalInvestigado += validators.ParseAmount(product.MontoInvestigado)
	}

	// Destinatarios: división - área - servicio de cada colaborador, sin
	// duplicados y en orden alfabético.
	seen := map[string]bool{}
	var destinatarios []string
	for _, col := range cd.Colaboradores {
		var parts []string
		for _, part := range []string{col.Division, col.Area, col.Servicio} {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) == 0 {
			continue
		}
		entry := strings.Join(parts, " - ")
		if !seen[entry] {
			seen[entry] = true
			destinatarios = append(destinatarios, entry)
		}
	}
	sort.Strings(destinatarios)
	if len(destinatarios) == 0 {
		ctx.DestinatariosText = "Sin divisiones registradas"
	} else {
		ctx.DestinatariosText = strings.Join(destinatarios, ", ")
	}

	reclamosPorProducto := map[string][]model.Reclamo{}
	for _, claim := range cd.Reclamos {
		if claim.IDProducto == "" {
			continue
		}
		reclamosPorProducto[claim.IDProducto] = append(reclamosPorProducto[claim.IDProducto], claim)
	}

	for i, client := range cd.Clientes {
		ctx.ClientRows = append(ctx.ClientRows, []string{
			fmt.Sprintf("Cliente %d", i+1),
			client.TipoID,
			client.IDCliente,
			client.Flag,
			client.Telefonos,
			client.Correos,
			client.Direcciones,
			client.Accionado,
		})
	}
	for i, col := range cd.Colaboradores {
		ctx.TeamRows = append(ctx.TeamRows, []string{
			fmt.Sprintf("Colaborador %d", i+1),
			col.IDColaborador,
			col.Flag,
			col.Division,
			col.Area,
			col.Servicio,
			col.Puesto,
			col.NombreAgencia,
			col.CodigoAgencia,
			col.TipoFalta,
			col.TipoSancion,
		})
	}
	for i, product := range cd.Productos {
		var claims []string
		for _, claim := range reclamosPorProducto[product.IDProducto] {
			claims = append(claims, claim.IDReclamo+" / "+claim.CodigoAnalitica)
		}
		montos := fmt.Sprintf(
			"INV:%s | PER:%s | FALLA:%s | CONT:%s | REC:%s | PAGO:%s",
			product.MontoInvestigado,
			product.MontoPerdidaFraude,
			product.MontoFallaProcesos,
			product.MontoContingencia,
			product.MontoRecuperado,
			product.MontoPagoDeuda,
		)
		ctx.ProductRows = append(ctx.ProductRows, []string{
			fmt.Sprintf("Producto %d", i+1),
			product.IDProducto,
			product.IDCliente,
			product.TipoProducto,
			product.Canal,
			product.Proceso,
			product.Categoria1,
			product.Categoria2,
			product.Modalidad,
			montos,
			strings.Join(claims, "; "),
		})
	}
	for _, risk := range cd.Riesgos {
		ctx.RiskRows = append(ctx.RiskRows, []string{
			risk.IDRiesgo, risk.Lider, risk.Criticidad, risk.ExposicionResidual, risk.PlanesAccion,
		})
	}
	for _, norm := range cd.Normas {
		ctx.NormRows = append(ctx.NormRows, []string{
			norm.IDNorma, norm.Descripcion, norm.FechaVigencia,
		})
	}
	for _, op := range cd.Operaciones {
		ctx.OperationRows = append(ctx.OperationRows, []string{
			op.CodOperation, op.Fecha, op.Monto, op.Descripcion,
		})
	}
	for _, anexo := range cd.Anexos {
		ctx.AnexoRows = append(ctx.AnexoRows, []string{
			anexo.Nombre, anexo.Descripcion, anexo.Ruta,
		})
	}
	ctx.Firmas = cd.Firmas

	ctx.SummarySentence = fmt.Sprintf(
		"Se documentaron %d clientes, %d colaboradores y %d productos. "+
			"El caso está tipificado como %s / %s en modalidad %s.",
		len(cd.Clientes), len(cd.Colaboradores), len(cd.Productos),
		cd.Caso.Categoria1, cd.Caso.Categoria2, cd.Caso.Modalidad,
	)

	return ctx
}

// HeaderLines son las líneas institucionales que abren el informe.
func (ctx *Context) HeaderLines() []string {
	return []string{
		"Banco de Crédito - BCP",
		"SEGURIDAD CORPORATIVA, INVESTIGACIONES & CRIMEN CIBERNÉTICO",
		"INVESTIGACIONES & CIBERCRIMINOLOGÍA",
		fmt.Sprintf("Informe %s N.%s", ctx.Caso.TipoInforme, ctx.Caso.IDCaso),
		"Dirigido a: " + ctx.DestinatariosText,
		fmt.Sprintf(
			"Referencia: %d colaboradores investigados, %d productos afectados, "+
				"monto investigado total %.2f y modalidad %s.",
			len(ctx.TeamRows), len(ctx.ProductRows), ctx.TotalInvestigado, ctx.Caso.Modalidad,
		),
	}
}

// analisisMarkdown renderiza un campo narrativo, o "Pendiente" si está vacío.
func (ctx *Context) analisisMarkdown(key string) string {
	entry, ok := ctx.Analisis[key]
	if !ok || strings.TrimSpace(entry.Text) == "" {
		return "Pendiente"
	}
	return richtext.RenderMarkdown(entry)
}

// mdTable produce una tabla Markdown, escapando los pipes de las celdas, o
// la línea "Sin registros." cuando no hay filas.
func mdTable(headers []string, rows [][]string) []string {
	if len(rows) == 0 {
		return []string{"Sin registros."}
	}
	lines := []string{
		"| " + strings.Join(headers, " | ") + " |",
		"| " + strings.Join(repeat("---", len(headers)), " | ") + " |",
	}
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, strings.ReplaceAll(cell, "|", `\|`))
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
	}
	return lines
}

func repeat(value string, count int) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = value
	}
	return out
}

// BuildMarkdown arma el informe completo en Markdown.
func BuildMarkdown(cd *casedata.CaseData) string {
	ctx := BuildContext(cd)

	lines := append([]string{}, ctx.HeaderLines()...)
	lines = append(lines,
		"",
		"## 1. Antecedentes",
		ctx.analisisMarkdown("antecedentes"),
		"",
		"## 2. Tabla de clientes",
	)
	lines = append(lines, mdTable(clientHeaders, ctx.ClientRows)...)
	lines = append(lines, "", "## 3. Tabla de team members involucrados")
	lines = append(lines, mdTable(teamHeaders, ctx.TeamRows)...)
	lines = append(lines, "", "## 4. Tabla de productos combinado")
	lines = append(lines, mdTable(productHeaders, ctx.ProductRows)...)
	lines = append(lines,
		"",
		"## 5. Resumen automatizado",
		ctx.SummarySentence,
		"",
		"## 6. Modus Operandi",
		ctx.analisisMarkdown("modus_operandi"),
		"",
		"## 7. Hallazgos Principales",
		ctx.analisisMarkdown("hallazgos"),
		"",
		"## 8. Descargo de colaboradores",
		ctx.analisisMarkdown("descargos"),
		"",
		"## 9. Tabla de riesgos identificados",
	)
	lines = append(lines, mdTable(riskHeaders, ctx.RiskRows)...)
	lines = append(lines, "", "## 10. Tabla de normas transgredidas")
	lines = append(lines, mdTable(normHeaders, ctx.NormRows)...)
	lines = append(lines,
		"",
		"## 11. Conclusiones",
		ctx.analisisMarkdown("conclusiones"),
		"",
		"## 12. Recomendaciones y mejoras de procesos",
		ctx.analisisMarkdown("recomendaciones"),
		"",
	)
	if len(ctx.OperationRows) > 0 {
		lines = append(lines, "## 13. Operaciones relevantes")
		lines = append(lines, mdTable(operationHeaders, ctx.OperationRows)...)
		lines = append(lines, "")
	}
	if len(ctx.AnexoRows) > 0 {
		lines = append(lines, "## 14. Anexos")
		lines = append(lines, mdTable(anexoHeaders, ctx.AnexoRows)...)
		lines = append(lines, "")
	}
	for _, firma := range ctx.Firmas {
		lines = append(lines, firma.Nombre, firma.Cargo, "")
	}
	return strings.Join(lines, "\n")
}

// BuildReportFilename arma el nombre base del informe sin extensión.
func BuildReportFilename(cd *casedata.CaseData) string {
	sanitize := func(value string) string {
		value = strings.TrimSpace(value)
		value = strings.Map(func(r rune) rune {
			switch r {
			case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
				return '_'
			}
			return r
		}, value)
		return value
	}
	tipo := sanitize(cd.Caso.TipoInforme)
	if tipo == "" {
		tipo = "informe"
	}
	caseID := sanitize(cd.Caso.IDCaso)
	if caseID == "" {
		caseID = "sin_caso"
	}
	return "informe_" + tipo + "_" + caseID
}
