package exporter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fic/casedata"
	"fic/history"
	"fic/model"
)

func sampleCase() *casedata.CaseData {
	return &casedata.CaseData{
		Caso: model.Caso{
			IDCaso:                "2024-0001",
			TipoInforme:           "Gerencia",
			FechaDeOcurrencia:     "2024-01-10",
			FechaDeDescubrimiento: "2024-02-01",
		},
		Clientes:      []model.Cliente{{IDCliente: "12345678", TipoID: "DNI"}},
		Colaboradores: []model.Colaborador{{IDColaborador: "B11111", Division: "Comercial"}},
		Productos: []model.Producto{{
			IDProducto:          "P1",
			IDCliente:           "12345678",
			MontoInvestigado:    "1500",
			FechaOcurrencia:     "2024-01-10",
			FechaDescubrimiento: "2024-02-01",
		}},
		Reclamos:      []model.Reclamo{{IDProducto: "P1", IDReclamo: "C00000001"}},
		Involucramientos: []model.Involucramiento{
			{IDProducto: "P1", IDColaborador: "B11111", MontoAsignado: "1500"},
		},
		Analisis: map[string]model.RichTextEntry{
			"antecedentes": {Text: "Alerta de ventanilla."},
		},
	}
}

func testExporter(t *testing.T) *Exporter {
	t.Helper()
	exportsDir := t.TempDir()
	return &Exporter{
		ExportsDir:  exportsDir,
		ExternalDir: t.TempDir(),
		Placeholder: "No aplica",
		History:     &history.Log{BaseDir: exportsDir, Placeholder: "No aplica"},
		Now:         func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) },
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}

func TestPerformSaveExports_ProducesAllArtifacts(t *testing.T) {
	e := testExporter(t)
	result, err := e.PerformSaveExports(sampleCase())
	if err != nil {
		t.Fatalf("PerformSaveExports: %v", err)
	}

	wantFiles := []string{
		"2024-0001_casos.csv",
		"2024-0001_clientes.csv",
		"2024-0001_colaboradores.csv",
		"2024-0001_productos.csv",
		"2024-0001_producto_reclamo.csv",
		"2024-0001_involucramiento.csv",
		"2024-0001_detalles_riesgo.csv",
		"2024-0001_detalles_norma.csv",
		"2024-0001_analisis.csv",
		"2024-0001_llave_tecnica.csv",
		"2024-0001_eventos.csv",
		"2024-0001_version.json",
		"2024-0001_informe.md",
		"2024-0001_informe.docx",
	}
	if len(result.Files) != len(wantFiles) {
		t.Fatalf("expected %d files, got %d: %v", len(wantFiles), len(result.Files), result.Files)
	}
	for i, want := range wantFiles {
		if filepath.Base(result.Files[i]) != want {
			t.Errorf("file %d = %s, want %s", i, filepath.Base(result.Files[i]), want)
		}
		if _, err := os.Stat(result.Files[i]); err != nil {
			t.Errorf("missing artifact %s: %v", want, err)
		}
	}
}

func TestPerformSaveExports_EntityCSVContent(t *testing.T) {
	e := testExporter(t)
	if _, err := e.PerformSaveExports(sampleCase()); err != nil {
		t.Fatalf("PerformSaveExports: %v", err)
	}

	clientes := readCSV(t, filepath.Join(e.ExportsDir, "2024-0001_clientes.csv"))
	if clientes[0][0] != "id_cliente" || clientes[0][1] != "id_caso" {
		t.Errorf("clientes header = %v", clientes[0])
	}
	if clientes[1][0] != "12345678" || clientes[1][1] != "2024-0001" {
		t.Errorf("clientes row should carry the injected case id: %v", clientes[1])
	}

	eventos := readCSV(t, filepath.Join(e.ExportsDir, "2024-0001_eventos.csv"))
	if len(eventos) != 2 {
		t.Fatalf("expected 1 evento row, got %d", len(eventos)-1)
	}
	for _, cell := range eventos[1] {
		if strings.TrimSpace(cell) == "" {
			t.Error("eventos cells must never be blank after placeholder substitution")
			break
		}
	}
}

func TestPerformSaveExports_VersionJSONRoundTrips(t *testing.T) {
	e := testExporter(t)
	if _, err := e.PerformSaveExports(sampleCase()); err != nil {
		t.Fatalf("PerformSaveExports: %v", err)
	}
	payload, err := os.ReadFile(filepath.Join(e.ExportsDir, "2024-0001_version.json"))
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("version.json should be valid JSON: %v", err)
	}
	if _, ok := decoded["caso"]; !ok {
		t.Error("version.json should carry the caso section")
	}
}

func TestPerformSaveExports_HistoryAppended(t *testing.T) {
	e := testExporter(t)
	if _, err := e.PerformSaveExports(sampleCase()); err != nil {
		t.Fatalf("PerformSaveExports: %v", err)
	}
	records := readCSV(t, filepath.Join(e.ExportsDir, "h_clientes.csv"))
	header := records[0]
	if header[len(header)-2] != "case_id" || header[len(header)-1] != "fecactualizacion" {
		t.Errorf("history header should end in case_id, fecactualizacion: %v", header)
	}
	if records[1][len(header)-2] != "2024-0001" {
		t.Errorf("history row should carry the case id: %v", records[1])
	}
	if _, err := os.Stat(filepath.Join(e.ExportsDir, "h_eventos.csv")); err != nil {
		t.Errorf("missing eventos history: %v", err)
	}
}

func TestPerformSaveExports_MirrorsToExternalDrive(t *testing.T) {
	e := testExporter(t)
	if _, err := e.PerformSaveExports(sampleCase()); err != nil {
		t.Fatalf("PerformSaveExports: %v", err)
	}
	mirror := filepath.Join(e.ExternalDir, "2024-0001", "2024-0001_eventos.csv")
	if _, err := os.Stat(mirror); err != nil {
		t.Errorf("expected mirrored file at %s: %v", mirror, err)
	}
}

func TestPerformSaveExports_MissingExternalDriveDegrades(t *testing.T) {
	e := testExporter(t)
	// Una ruta que no puede crearse: hijo de un archivo regular.
	blocker := filepath.Join(t.TempDir(), "archivo")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	e.ExternalDir = filepath.Join(blocker, "unidad")

	if _, err := e.PerformSaveExports(sampleCase()); err != nil {
		t.Errorf("mirror failure should degrade to WARN, got %v", err)
	}
}

func TestValidateCase(t *testing.T) {
	cd := sampleCase()
	errors, _ := ValidateCase(cd)
	if len(errors) != 0 {
		t.Errorf("valid case should produce no errors: %v", errors)
	}

	cd.Caso.IDCaso = "malo"
	cd.Clientes[0].IDCliente = "12"
	errors, _ = ValidateCase(cd)
	if len(errors) < 2 {
		t.Errorf("expected case id and client id errors, got %v", errors)
	}

	warnCase := sampleCase()
	warnCase.Caso.TipoInforme = "Inexistente"
	_, warnings := ValidateCase(warnCase)
	if len(warnings) == 0 {
		t.Error("unknown tipo_informe should warn")
	}
}
