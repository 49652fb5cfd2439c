package report

import (
	"strings"
	"testing"

	"fic/casedata"
	"fic/model"
)

func sampleCase() *casedata.CaseData {
	return &casedata.CaseData{
		Caso: model.Caso{
			IDCaso:      "2024-0001",
			TipoInforme: "Gerencia",
			Categoria1:  "Fraude Interno",
			Categoria2:  "Hurto",
			Modalidad:   "Apropiación de efectivo",
		},
		Clientes: []model.Cliente{
			{IDCliente: "12345678", TipoID: "DNI", Nombres: "Ana"},
		},
		Colaboradores: []model.Colaborador{
			{IDColaborador: "B11111", Division: "División Comercial", Area: "Banca", Servicio: "Ventanilla"},
			{IDColaborador: "B22222", Division: "División Comercial", Area: "Banca", Servicio: "Ventanilla"},
			{IDColaborador: "B33333", Division: "Ahorros"},
		},
		Productos: []model.Producto{
			{IDProducto: "P1", MontoInvestigado: "1500.50"},
			{IDProducto: "P2", MontoInvestigado: "499.50"},
		},
		Reclamos: []model.Reclamo{
			{IDProducto: "P1", IDReclamo: "C00000001", CodigoAnalitica: "4312345678"},
		},
		Analisis: map[string]model.RichTextEntry{
			"antecedentes": {Text: "Se recibió una alerta."},
		},
	}
}

func TestBuildContext_TotalsAndDestinatarios(t *testing.T) {
	ctx := BuildContext(sampleCase())
	if ctx.TotalInvestigado != 2000.0 {
		t.Errorf("TotalInvestigado = %v, want 2000", ctx.TotalInvestigado)
	}
	// Duplicados colapsados y orden alfabético.
	want := "Ahorros, División Comercial - Banca - Ventanilla"
	if ctx.DestinatariosText != want {
		t.Errorf("DestinatariosText = %q, want %q", ctx.DestinatariosText, want)
	}
}

func TestBuildContext_NoColaboradores(t *testing.T) {
	cd := sampleCase()
	cd.Colaboradores = nil
	ctx := BuildContext(cd)
	if ctx.DestinatariosText != "Sin divisiones registradas" {
		t.Errorf("DestinatariosText = %q", ctx.DestinatariosText)
	}
}

func TestHeaderLines(t *testing.T) {
	ctx := BuildContext(sampleCase())
	lines := ctx.HeaderLines()
	if len(lines) != 6 {
		t.Fatalf("expected 6 header lines, got %d", len(lines))
	}
	if lines[0] != "Banco de Crédito - BCP" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[3] != "Informe Gerencia N.2024-0001" {
		t.Errorf("title line = %q", lines[3])
	}
	if !strings.Contains(lines[5], "monto investigado total 2000.00") {
		t.Errorf("reference line should carry the two-decimal total: %q", lines[5])
	}
}

func TestBuildMarkdown_Sections(t *testing.T) {
	md := BuildMarkdown(sampleCase())
	for _, section := range []string{
		"## 1. Antecedentes",
		"## 2. Tabla de clientes",
		"## 3. Tabla de team members involucrados",
		"## 4. Tabla de productos combinado",
		"## 5. Resumen automatizado",
		"## 6. Modus Operandi",
		"## 7. Hallazgos Principales",
		"## 8. Descargo de colaboradores",
		"## 9. Tabla de riesgos identificados",
		"## 10. Tabla de normas transgredidas",
		"## 11. Conclusiones",
		"## 12. Recomendaciones y mejoras de procesos",
	} {
		if !strings.Contains(md, section) {
			t.Errorf("missing section %q", section)
		}
	}
	if !strings.Contains(md, "Se recibió una alerta.") {
		t.Error("filled narrative should render its text")
	}
	if !strings.Contains(md, "Pendiente") {
		t.Error("empty narratives should render as Pendiente")
	}
	if !strings.Contains(md, "Sin registros.") {
		t.Error("empty tables should render as Sin registros.")
	}
	if !strings.Contains(md, "C00000001 / 4312345678") {
		t.Error("claims should be joined as id / codigo")
	}
	if strings.Contains(md, "## 13.") || strings.Contains(md, "## 14.") {
		t.Error("optional sections should not appear without data")
	}
}

func TestBuildMarkdown_OptionalSectionsAndFirmas(t *testing.T) {
	cd := sampleCase()
	cd.Operaciones = []model.Operacion{{CodOperation: "OP-1", Fecha: "2024-01-10", Monto: "100"}}
	cd.Anexos = []model.Anexo{{Nombre: "Anexo A", Descripcion: "Vouchers"}}
	cd.Firmas = []model.Firma{{Nombre: "Rosa Quispe", Cargo: "Investigadora"}}

	md := BuildMarkdown(cd)
	if !strings.Contains(md, "## 13. Operaciones relevantes") {
		t.Error("missing operations section")
	}
	if !strings.Contains(md, "## 14. Anexos") {
		t.Error("missing annex section")
	}
	if !strings.Contains(md, "Rosa Quispe\nInvestigadora") {
		t.Error("missing signature block")
	}
}

func TestMdTable_EscapesPipes(t *testing.T) {
	lines := mdTable([]string{"A"}, [][]string{{"x|y"}})
	if len(lines) != 3 {
		t.Fatalf("expected header + separator + row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[2], `x\|y`) {
		t.Errorf("pipe should be escaped: %q", lines[2])
	}
}

func TestBuildReportFilename(t *testing.T) {
	cd := sampleCase()
	if got := BuildReportFilename(cd); got != "informe_Gerencia_2024-0001" {
		t.Errorf("BuildReportFilename = %q", got)
	}
	cd.Caso.TipoInforme = "Tipo raro/2024"
	cd.Caso.IDCaso = ""
	if got := BuildReportFilename(cd); got != "informe_Tipo_raro_2024_sin_caso" {
		t.Errorf("BuildReportFilename = %q", got)
	}
}
