package parsers

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadMassiveRows_TrimsAndSkipsEmpty(t *testing.T) {
	input := "\xEF\xBB\xBFid_cliente, nombres \n 12345678 , Ana \n,\n87654321,Luis\n"
	rows, err := ReadMassiveRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadMassiveRows: %v", err)
	}
	want := []map[string]string{
		{"id_cliente": "12345678", "nombres": "Ana"},
		{"id_cliente": "87654321", "nombres": "Luis"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestReadMassiveRows_EmptyFile(t *testing.T) {
	if _, err := ReadMassiveRows(strings.NewReader("")); err == nil {
		t.Error("empty file should fail")
	}
}

func TestParseClientDetailsCSV_AliasAndSkip(t *testing.T) {
	input := "IdCliente,nombres\n12345678,Ana\n,SinID\n"
	details, err := ParseClientDetailsCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseClientDetailsCSV: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected 1 detail (row without ID skipped), got %d", len(details))
	}
	if details[0].IDCliente != "12345678" || details[0].Nombres != "Ana" {
		t.Errorf("unexpected detail: %+v", details[0])
	}
}

func TestParseTeamDetailsCSV_LowercaseFallback(t *testing.T) {
	input := "id_colaborador,division\nB11111,Comercial\n"
	details, err := ParseTeamDetailsCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTeamDetailsCSV: %v", err)
	}
	if len(details) != 1 || details[0].IDColaborador != "B11111" {
		t.Errorf("unexpected details: %+v", details)
	}
}

func TestParseInvolvementEntries(t *testing.T) {
	entries := ParseInvolvementEntries("A12345:150.00; B67890 ; ;C11111:30")
	want := []InvolvementEntry{
		{IDColaborador: "A12345", MontoAsignado: "150.00"},
		{IDColaborador: "B67890"},
		{IDColaborador: "C11111", MontoAsignado: "30"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCombinedCSV_ImplicitInvolvement(t *testing.T) {
	input := "id_cliente,id_colaborador,id_producto,monto_asignado,involucramiento\n" +
		"12345678,B11111,P1,200,\n" +
		"87654321,B22222,P2,,A99999:50\n"
	rows, err := ParseCombinedCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCombinedCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Sin columna de involucramiento: colaborador + monto_asignado generan uno implícito.
	if len(rows[0].Involvements) != 1 || rows[0].Involvements[0].IDColaborador != "B11111" ||
		rows[0].Involvements[0].MontoAsignado != "200" {
		t.Errorf("implicit involvement mismatch: %+v", rows[0].Involvements)
	}
	// Columna explícita: se respeta tal cual.
	if len(rows[1].Involvements) != 1 || rows[1].Involvements[0].IDColaborador != "A99999" {
		t.Errorf("explicit involvement mismatch: %+v", rows[1].Involvements)
	}
}

func TestGetColIndex_RequiredMissing(t *testing.T) {
	if _, err := getColIndex([]string{"a", "b"}, []string{"c"}); err == nil {
		t.Error("missing required header should fail")
	}
	index, err := getColIndex([]string{" a ", "b"}, []string{"a"})
	if err != nil {
		t.Fatalf("getColIndex: %v", err)
	}
	if index["a"] != 0 {
		t.Errorf("index[a] = %d", index["a"])
	}
}
