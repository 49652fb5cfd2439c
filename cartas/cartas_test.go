package cartas

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fic/casedata"
	"fic/model"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
}

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	return &Generator{
		ExportsDir: t.TempDir(),
		Hostname:   "equipo-pruebas",
		Now:        fixedClock,
	}
}

func testCase() *casedata.CaseData {
	return &casedata.CaseData{
		Caso: model.Caso{
			IDCaso:                "2024-0001",
			MatriculaInvestigador: "A12345",
			InvestigadorNombre:    "Rosa Quispe",
		},
	}
}

func member(id string) model.Colaborador {
	return model.Colaborador{
		IDColaborador: id,
		Nombres:       "Juan",
		Apellidos:     "Pérez",
		Division:      "División Comercial",
		Area:          "Banca Minorista",
		Flag:          "Involucrado",
	}
}

func TestGenerateCartas_AssignsSequentialNumbers(t *testing.T) {
	g := testGenerator(t)
	result, err := g.GenerateCartas(testCase(), []model.Colaborador{member("B11111"), member("B22222")})
	if err != nil {
		t.Fatalf("GenerateCartas: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	if result.Rows[0]["Numero_de_Carta"] != "001-2024" || result.Rows[1]["Numero_de_Carta"] != "002-2024" {
		t.Errorf("unexpected numbers: %s, %s",
			result.Rows[0]["Numero_de_Carta"], result.Rows[1]["Numero_de_Carta"])
	}
	for _, path := range result.Files {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected docx at %s: %v", path, err)
		}
	}
}

func TestGenerateCartas_ContinuesFromHistory(t *testing.T) {
	g := testGenerator(t)
	caso2 := testCase()
	caso2.Caso.IDCaso = "2024-0002"

	if _, err := g.GenerateCartas(testCase(), []model.Colaborador{member("B11111")}); err != nil {
		t.Fatalf("first generation: %v", err)
	}
	result, err := g.GenerateCartas(caso2, []model.Colaborador{member("B33333")})
	if err != nil {
		t.Fatalf("second generation: %v", err)
	}
	if result.Rows[0]["Numero_de_Carta"] != "002-2024" {
		t.Errorf("sequence should continue across cases, got %s", result.Rows[0]["Numero_de_Carta"])
	}
}

func TestGenerateCartas_DuplicateRejected(t *testing.T) {
	g := testGenerator(t)
	if _, err := g.GenerateCartas(testCase(), []model.Colaborador{member("B11111")}); err != nil {
		t.Fatalf("first generation: %v", err)
	}
	_, err := g.GenerateCartas(testCase(), []model.Colaborador{member("B11111")})
	if !errors.Is(err, ErrCartaDuplicada) {
		t.Errorf("expected ErrCartaDuplicada, got %v", err)
	}
}

func TestGenerateCartas_Preconditions(t *testing.T) {
	g := testGenerator(t)

	if _, err := g.GenerateCartas(testCase(), nil); !errors.Is(err, ErrSinColaboradores) {
		t.Errorf("expected ErrSinColaboradores, got %v", err)
	}

	noCase := testCase()
	noCase.Caso.IDCaso = ""
	if _, err := g.GenerateCartas(noCase, []model.Colaborador{member("B11111")}); !errors.Is(err, ErrCasoObligatorio) {
		t.Errorf("expected ErrCasoObligatorio, got %v", err)
	}

	noInvestigator := testCase()
	noInvestigator.Caso.MatriculaInvestigador = ""
	if _, err := g.GenerateCartas(noInvestigator, []model.Colaborador{member("B11111")}); !errors.Is(err, ErrMatriculaFaltante) {
		t.Errorf("expected ErrMatriculaFaltante, got %v", err)
	}
}

func TestGenerateCartas_LockBlocksConcurrentRun(t *testing.T) {
	g := testGenerator(t)
	if err := os.MkdirAll(g.cartasDir(), 0755); err != nil {
		t.Fatal(err)
	}
	lockPath := filepath.Join(g.cartasDir(), ".cartas.lock")
	if err := os.WriteFile(lockPath, []byte("otro-host\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := g.GenerateCartas(testCase(), []model.Colaborador{member("B11111")})
	if !errors.Is(err, ErrGeneracionEnCurso) {
		t.Errorf("expected ErrGeneracionEnCurso with fresh lock, got %v", err)
	}

	// Un candado con ModTime antiguo se considera huérfano y se reemplaza.
	old := fixedClock().Add(-10 * time.Minute)
	if err := os.Chtimes(lockPath, old, old); err != nil {
		t.Fatal(err)
	}
	if _, err := g.GenerateCartas(testCase(), []model.Colaborador{member("B11111")}); err != nil {
		t.Errorf("stale lock should be stolen, got %v", err)
	}
}

func TestGenerateCartas_HistorySchemaUpgrade(t *testing.T) {
	g := testGenerator(t)
	if err := os.MkdirAll(g.ExportsDir, 0755); err != nil {
		t.Fatal(err)
	}
	// Histórico con el esquema plano antiguo.
	legacy := filepath.Join(g.ExportsDir, "h_cartas_inmediatez.csv")
	content := strings.Join([]string{
		strings.Join(csvFields, ","),
		"2023-0009,2023-06-01,06,Rosa Quispe,A12345,B99999,Sede,,," + "007-2023,Informativo",
	}, "\n") + "\n"
	if err := os.WriteFile(legacy, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := g.GenerateCartas(testCase(), []model.Colaborador{member("B11111")}); err != nil {
		t.Fatalf("GenerateCartas over legacy history: %v", err)
	}

	file, err := os.Open(legacy)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if records[0][0] != "id_carta" {
		t.Errorf("history should be migrated to the id_carta schema, header: %v", records[0])
	}
	// La fila legada sobrevive la migración con su número original.
	found := false
	for _, row := range records[1:] {
		if row[0] == "007-2023" {
			found = true
		}
	}
	if !found {
		t.Error("legacy row should survive the schema migration")
	}
}

func TestDetermineTipo(t *testing.T) {
	cases := []struct {
		division, want string
	}{
		{"División Comercial", "Agencia"},
		{"DCC", "Agencia"},
		{"dcc", "Agencia"},
		{"Riesgos", "Sede"},
		{"", "Sede"},
	}
	for _, tc := range cases {
		if got := DetermineTipo(tc.division); got != tc.want {
			t.Errorf("DetermineTipo(%q) = %q, want %q", tc.division, got, tc.want)
		}
	}
}

func TestFormatLongDate(t *testing.T) {
	date := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if got := FormatLongDate(date); got != "02 enero 2024" {
		t.Errorf("FormatLongDate = %q", got)
	}
}

func TestBuildRow_TipoEntrevista(t *testing.T) {
	g := testGenerator(t)
	ctx := cartaContext{caseID: "2024-0001", generationDate: fixedClock()}

	involved := member("B11111")
	if row := g.buildRow(ctx, involved, "001-2024"); row["Tipo_entrevista"] != "Involucrado" {
		t.Errorf("Tipo_entrevista = %q, want Involucrado", row["Tipo_entrevista"])
	}
	related := member("B11111")
	related.Flag = "Relacionado"
	if row := g.buildRow(ctx, related, "001-2024"); row["Tipo_entrevista"] != "Informativo" {
		t.Errorf("Tipo_entrevista = %q, want Informativo", row["Tipo_entrevista"])
	}
}

func TestParseLastSequence_IgnoresOtherYears(t *testing.T) {
	records := []map[string]string{
		{"Numero_de_Carta": "005-2023"},
		{"Numero_de_Carta": "002-2024"},
		{"Numero_de_Carta": "basura"},
	}
	if got := parseLastSequence(records, 2024); got != 2 {
		t.Errorf("parseLastSequence = %d, want 2", got)
	}
}
