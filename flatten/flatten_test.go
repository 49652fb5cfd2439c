package flatten

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"fic/casedata"
	"fic/model"
)

func baseCase() *casedata.CaseData {
	return &casedata.CaseData{
		Caso: model.Caso{
			IDCaso:                "2024-0001",
			TipoInforme:           "Gerencia",
			FechaDeOcurrencia:     "2024-01-10",
			FechaDeDescubrimiento: "2024-02-01",
			MatriculaInvestigador: "A12345",
		},
	}
}

func TestBuildLlaveTecnicaRows_CrossJoin(t *testing.T) {
	cd := baseCase()
	cd.Productos = []model.Producto{{IDProducto: "P1", IDCliente: "C1"}}
	cd.Involucramientos = []model.Involucramiento{
		{IDProducto: "P1", IDColaborador: "B11111"},
	}
	cd.Reclamos = []model.Reclamo{
		{IDProducto: "P1", IDReclamo: "C00000001"},
		{IDProducto: "P1", IDReclamo: "C00000002"},
	}

	rows, header := BuildLlaveTecnicaRows(cd)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows (1 involvement x 2 claims), got %d", len(rows))
	}
	if diff := cmp.Diff(LlaveTecnicaHeader, header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	// Las dos filas solo difieren en id_reclamo.
	if rows[0]["id_reclamo"] == rows[1]["id_reclamo"] {
		t.Error("claim ids should differ between rows")
	}
	for _, row := range rows {
		if row["id_colaborador"] != "B11111" {
			t.Errorf("id_colaborador = %q, want B11111", row["id_colaborador"])
		}
		if row["tipo_involucrado"] != "colaborador" {
			t.Errorf("tipo_involucrado = %q, want colaborador", row["tipo_involucrado"])
		}
	}
}

func TestBuildLlaveTecnicaRows_ProductWithoutRelations(t *testing.T) {
	cd := baseCase()
	cd.Productos = []model.Producto{{IDProducto: "P1", IDCliente: "C1"}}

	rows, _ := BuildLlaveTecnicaRows(cd)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row for relation-less product, got %d", len(rows))
	}
	row := rows[0]
	if row["id_reclamo"] != "" || row["id_colaborador"] != "" || row["tipo_involucrado"] != "" {
		t.Errorf("relation-less product should emit empty relation cells, got %v", row)
	}
	if row["id_caso"] != "2024-0001" {
		t.Errorf("id_caso = %q", row["id_caso"])
	}
}

func TestBuildLlaveTecnicaRows_DateInheritance(t *testing.T) {
	cd := baseCase()
	cd.Productos = []model.Producto{
		{IDProducto: "P1", FechaOcurrencia: "2024-03-05"},
		{IDProducto: "P2"},
	}

	rows, _ := BuildLlaveTecnicaRows(cd)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["fecha_ocurrencia"] != "2024-03-05" {
		t.Errorf("product date should win, got %q", rows[0]["fecha_ocurrencia"])
	}
	if rows[1]["fecha_ocurrencia"] != "2024-01-10" {
		t.Errorf("missing product date should inherit case date, got %q", rows[1]["fecha_ocurrencia"])
	}
}

func TestBuildLlaveTecnicaRows_MTimesN(t *testing.T) {
	cd := baseCase()
	cd.Productos = []model.Producto{{IDProducto: "P1"}}
	for i := 0; i < 3; i++ {
		cd.Involucramientos = append(cd.Involucramientos, model.Involucramiento{
			IDProducto: "P1", IDColaborador: "B1111" + string(rune('0'+i)),
		})
	}
	for i := 0; i < 4; i++ {
		cd.Reclamos = append(cd.Reclamos, model.Reclamo{
			IDProducto: "P1", IDReclamo: "C0000000" + string(rune('1'+i)),
		})
	}

	rows, _ := BuildLlaveTecnicaRows(cd)
	if len(rows) != 12 {
		t.Fatalf("expected 3x4=12 rows, got %d", len(rows))
	}
}

func TestResolveTipoInvolucrado(t *testing.T) {
	cases := []struct {
		inv  model.Involucramiento
		want string
	}{
		{model.Involucramiento{TipoInvolucrado: "Cliente"}, "cliente"},
		{model.Involucramiento{IDClienteInvolucrado: "C9"}, "cliente"},
		{model.Involucramiento{IDColaborador: "B11111"}, "colaborador"},
		{model.Involucramiento{}, ""},
	}
	for _, tc := range cases {
		if got := ResolveTipoInvolucrado(tc.inv); got != tc.want {
			t.Errorf("ResolveTipoInvolucrado(%+v) = %q, want %q", tc.inv, got, tc.want)
		}
	}
}

func TestBuildEventosRows_PlaceholderSubstitution(t *testing.T) {
	cd := baseCase()
	cd.Productos = []model.Producto{{IDProducto: "P1"}}

	rows, header := BuildEventosRows(cd, "No aplica")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if len(header) != len(EventosHeader) {
		t.Fatalf("header length %d, want %d", len(header), len(EventosHeader))
	}
	row := rows[0]
	if row["monto_investigado"] != "No aplica" {
		t.Errorf("empty field should carry the placeholder, got %q", row["monto_investigado"])
	}
	if row["case_id"] != "2024-0001" || row["id_caso"] != "2024-0001" {
		t.Errorf("case id should appear in both header blocks: %q / %q", row["case_id"], row["id_caso"])
	}
}

func TestBuildEventosRows_PlaceholderCollisionEscaped(t *testing.T) {
	cd := baseCase()
	cd.Productos = []model.Producto{{IDProducto: "P1", TipoProducto: "No aplica"}}

	rows, _ := BuildEventosRows(cd, "No aplica")
	if got := rows[0]["tipo_de_producto"]; got != "'No aplica" {
		t.Errorf("literal placeholder collision should be escaped, got %q", got)
	}
}

func TestBuildEventosRows_ProductAttributesCoalesce(t *testing.T) {
	cd := baseCase()
	cd.Caso.Canal = "Oficina"
	cd.Productos = []model.Producto{
		{IDProducto: "P1", Canal: "Digital"},
		{IDProducto: "P2"},
	}

	rows, _ := BuildEventosRows(cd, "No aplica")
	if rows[0]["canal"] != "Digital" {
		t.Errorf("product channel should win, got %q", rows[0]["canal"])
	}
	if rows[1]["canal"] != "Oficina" {
		t.Errorf("missing product channel should fall back to the case, got %q", rows[1]["canal"])
	}
}

func TestBuildTechnicalKey(t *testing.T) {
	key := BuildTechnicalKey("2024-0001", " p1 ", "", "b11111", "", "c00000001")
	want := TechnicalKey{"2024-0001", "P1", "-", "B11111", "-", "C00000001"}
	if key != want {
		t.Errorf("BuildTechnicalKey = %v, want %v", key, want)
	}
}

func TestExpandTechnicalKeys(t *testing.T) {
	keys := ExpandTechnicalKeys("2024-0001", "P1",
		[]string{"c1", "c2"}, nil, "2024-01-10", []string{"C00000001"})
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys (2 clients x 1 empty party x 1 claim), got %d", len(keys))
	}
	for _, key := range keys {
		if key[3] != EmptyPart {
			t.Errorf("empty party collection should expand to %q, got %q", EmptyPart, key[3])
		}
	}
}
