package casedata

import (
	"encoding/json"
	"testing"

	"fic/model"
)

func payloadFromJSON(t *testing.T, raw string) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("bad test payload: %v", err)
	}
	return payload
}

func TestFromPayload_FullCase(t *testing.T) {
	payload := payloadFromJSON(t, `{
		"caso": {"id_caso": "2024-0001", "tipo_informe": "Gerencia"},
		"clientes": [{"id_cliente": "12345678", "tipo_id": "DNI"}],
		"colaboradores": [{"id_colaborador": "B11111"}],
		"productos": [{"id_producto": "P1", "monto_investigado": "1500"}],
		"reclamos": [{"id_producto": "P1", "id_reclamo": "C00000001"}],
		"involucramientos": [{"id_producto": "P1", "id_colaborador": "B11111"}],
		"analisis": {
			"antecedentes": "texto plano",
			"hallazgos": {"text": "con formato", "tags": [{"tag": "bold", "start": "1.0", "end": "1.3"}]}
		}
	}`)

	cd := FromPayload(payload)
	if cd.Caso.IDCaso != "2024-0001" {
		t.Errorf("IDCaso = %q", cd.Caso.IDCaso)
	}
	if len(cd.Clientes) != 1 || cd.Clientes[0].TipoID != "DNI" {
		t.Errorf("clientes = %+v", cd.Clientes)
	}
	if len(cd.Involucramientos) != 1 || cd.Involucramientos[0].IDColaborador != "B11111" {
		t.Errorf("involucramientos = %+v", cd.Involucramientos)
	}
	if cd.AnalisisTexto("antecedentes") != "texto plano" {
		t.Errorf("plain analysis = %q", cd.AnalisisTexto("antecedentes"))
	}
	entry := cd.Analisis["hallazgos"]
	if entry.Text != "con formato" || len(entry.Tags) != 1 || entry.Tags[0].Tag != "bold" {
		t.Errorf("rich analysis = %+v", entry)
	}
}

func TestFromPayload_NeverFails(t *testing.T) {
	for _, payload := range []map[string]any{
		nil,
		{},
		{"clientes": "no-es-lista"},
		{"clientes": []any{"no-es-mapa", 42}},
		{"caso": []any{"tipo equivocado"}},
	} {
		cd := FromPayload(payload)
		if cd == nil {
			t.Fatal("FromPayload must never return nil")
		}
		if len(cd.Clientes) != 0 {
			t.Errorf("malformed sections should yield empty collections: %+v", cd.Clientes)
		}
	}
}

func TestFromPayload_NumericIDsBecomeStrings(t *testing.T) {
	payload := payloadFromJSON(t, `{"clientes": [{"id_cliente": 12345678}]}`)
	cd := FromPayload(payload)
	if cd.Clientes[0].IDCliente != "12345678" {
		t.Errorf("numeric id = %q, want 12345678", cd.Clientes[0].IDCliente)
	}
}

func TestFromPayload_InvolvementClienteFlagAlias(t *testing.T) {
	payload := payloadFromJSON(t, `{
		"involucramientos": [{"id_producto": "P1", "cliente_flag": "cliente", "id_cliente_involucrado": "C9"}]
	}`)
	cd := FromPayload(payload)
	if cd.Involucramientos[0].TipoInvolucrado != "cliente" {
		t.Errorf("cliente_flag alias should populate TipoInvolucrado, got %q", cd.Involucramientos[0].TipoInvolucrado)
	}
}

func TestAsDictCached(t *testing.T) {
	cd := FromPayload(map[string]any{})
	first := cd.AsDict()
	cd.Clientes = append(cd.Clientes, model.Cliente{IDCliente: "nuevo"})
	second := cd.AsDict()
	if len(second["clientes"].([]model.Cliente)) != 0 {
		t.Error("AsDict must return the cached view after the first call")
	}
	if _, ok := first["caso"]; !ok {
		t.Error("dict view should always carry the caso section")
	}
}

func TestRichTextEntryFromValue(t *testing.T) {
	if entry := RichTextEntryFromValue("plano"); entry.Text != "plano" || entry.Tags != nil {
		t.Errorf("string value = %+v", entry)
	}
	if entry := RichTextEntryFromValue(12345); entry.Text != "" {
		t.Errorf("unsupported value should yield empty entry, got %+v", entry)
	}
	passthrough := model.RichTextEntry{Text: "x"}
	if entry := RichTextEntryFromValue(passthrough); entry.Text != "x" {
		t.Errorf("entry value should pass through, got %+v", entry)
	}
}
