package parsers

import (
	"io"
	"strings"

	"fic/catalogs"
)

// InvolvementEntry es un par colaborador/monto de la columna
// "involucramiento" del CSV combinado ("A12345:150.00;B67890:30").
type InvolvementEntry struct {
	IDColaborador string `json:"id_colaborador"`
	MontoAsignado string `json:"monto_asignado"`
}

// CombinedRow es una fila del CSV combinado con los IDs ya resueltos por
// alias y los involucramientos parseados.
type CombinedRow struct {
	Raw          map[string]string  `json:"raw"`
	ClientID     string             `json:"id_cliente"`
	TeamID       string             `json:"id_colaborador"`
	ProductID    string             `json:"id_producto"`
	Involvements []InvolvementEntry `json:"involucramientos"`
}

// ParseInvolvementEntries parsea la columna de involucramientos: entradas
// separadas por ";", cada una "id:monto" o solo "id".
func ParseInvolvementEntries(raw string) []InvolvementEntry {
	var entries []InvolvementEntry
	for _, chunk := range strings.Split(raw, ";") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if idx := strings.Index(chunk, ":"); idx >= 0 {
			entries = append(entries, InvolvementEntry{
				IDColaborador: strings.TrimSpace(chunk[:idx]),
				MontoAsignado: strings.TrimSpace(chunk[idx+1:]),
			})
		} else {
			entries = append(entries, InvolvementEntry{IDColaborador: chunk})
		}
	}
	return entries
}

// ParseCombinedCSV importa el CSV combinado de clientes, colaboradores y
// productos. Una fila sin involucramientos explícitos pero con colaborador
// y monto_asignado produce un involucramiento implícito.
func ParseCombinedCSV(r io.Reader) ([]CombinedRow, error) {
	rows, err := ReadMassiveRows(r)
	if err != nil {
		return nil, err
	}
	var combined []CombinedRow
	for _, row := range rows {
		entry := CombinedRow{Raw: row}
		entry.ClientID = rowID(row, catalogs.ClientIDAliases)
		if entry.ClientID == "" {
			entry.ClientID = row["id_cliente"]
		}
		entry.TeamID = rowID(row, catalogs.TeamIDAliases)
		if entry.TeamID == "" {
			entry.TeamID = row["id_colaborador"]
		}
		entry.ProductID = rowID(row, catalogs.ProductIDAliases)
		if entry.ProductID == "" {
			entry.ProductID = row["id_producto"]
		}
		entry.Involvements = ParseInvolvementEntries(row["involucramiento"])
		if len(entry.Involvements) == 0 && entry.TeamID != "" && row["monto_asignado"] != "" {
			entry.Involvements = []InvolvementEntry{{
				IDColaborador: entry.TeamID,
				MontoAsignado: row["monto_asignado"],
			}}
		}
		combined = append(combined, entry)
	}
	return combined, nil
}
