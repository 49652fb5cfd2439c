package flatten

import (
	"strings"

	"fic/casedata"
	"fic/model"
)

// LlaveTecnicaHeader es el contrato de columnas del CSV de llave técnica.
// El orden es fijo: otras herramientas lo consumen posicionalmente.
var LlaveTecnicaHeader = []string{
	"id_caso",
	"tipo_informe",
	"categoria1",
	"categoria2",
	"modalidad",
	"canal",
	"proceso",
	"fecha_de_ocurrencia",
	"fecha_de_descubrimiento",
	"centro_costos",
	"matricula_investigador",
	"investigador_nombre",
	"investigador_cargo",
	"id_producto",
	"id_cliente",
	"id_colaborador",
	"id_cliente_involucrado",
	"tipo_involucrado",
	"id_reclamo",
	"fecha_ocurrencia",
}

// BuildLlaveTecnicaRows emite una fila por cada par involucramiento × reclamo
// de cada producto. Un producto sin involucramientos o sin reclamos aporta un
// elemento vacío en la dimensión faltante, de modo que siempre produce al
// menos una fila.
func BuildLlaveTecnicaRows(cd *casedata.CaseData) ([]map[string]string, []string) {
	caso := cd.Caso
	caseCells := map[string]string{
		"id_caso":                 caso.IDCaso,
		"tipo_informe":            caso.TipoInforme,
		"categoria1":              caso.Categoria1,
		"categoria2":              caso.Categoria2,
		"modalidad":               caso.Modalidad,
		"canal":                   caso.Canal,
		"proceso":                 caso.Proceso,
		"fecha_de_ocurrencia":     caso.FechaDeOcurrencia,
		"fecha_de_descubrimiento": caso.FechaDeDescubrimiento,
		"centro_costos":           caso.CentroCostos,
		"matricula_investigador":  caso.MatriculaInvestigador,
		"investigador_nombre":     caso.InvestigadorNombre,
		"investigador_cargo":      caso.InvestigadorCargo,
	}

	claimsByProduct := groupClaims(cd.Reclamos)
	involvementsByProduct := groupInvolvements(cd.Involucramientos)

	var rows []map[string]string
	for _, producto := range cd.Productos {
		// La herencia de fechas se resuelve una sola vez por producto,
		// antes del producto cartesiano.
		occurrence := inheritDate(producto.FechaOcurrencia, caso.FechaDeOcurrencia)

		involvements := involvementsByProduct[producto.IDProducto]
		if len(involvements) == 0 {
			involvements = []model.Involucramiento{{}}
		}
		claims := claimsByProduct[producto.IDProducto]
		if len(claims) == 0 {
			claims = []model.Reclamo{{}}
		}

		for _, inv := range involvements {
			tipo := ResolveTipoInvolucrado(inv)
			colaboradorID, clienteInvolucradoID := resolveParty(inv, tipo)
			for _, claim := range claims {
				row := make(map[string]string, len(LlaveTecnicaHeader))
				for field, value := range caseCells {
					row[field] = value
				}
				row["id_producto"] = producto.IDProducto
				row["id_cliente"] = producto.IDCliente
				row["id_colaborador"] = colaboradorID
				row["id_cliente_involucrado"] = clienteInvolucradoID
				row["tipo_involucrado"] = tipo
				row["id_reclamo"] = claim.IDReclamo
				row["fecha_ocurrencia"] = occurrence
				rows = append(rows, row)
			}
		}
	}

	return rows, append([]string(nil), LlaveTecnicaHeader...)
}

// ResolveTipoInvolucrado aplica la regla de desambiguación: el campo explícito
// manda; si falta, la presencia de id_cliente_involucrado implica "cliente" y
// la de id_colaborador implica "colaborador".
func ResolveTipoInvolucrado(inv model.Involucramiento) string {
	if tipo := strings.TrimSpace(inv.TipoInvolucrado); tipo != "" {
		return strings.ToLower(tipo)
	}
	if strings.TrimSpace(inv.IDClienteInvolucrado) != "" {
		return "cliente"
	}
	if strings.TrimSpace(inv.IDColaborador) != "" {
		return "colaborador"
	}
	return ""
}

// resolveParty devuelve (id_colaborador, id_cliente_involucrado) mutuamente
// excluyentes según el tipo resuelto.
func resolveParty(inv model.Involucramiento, tipo string) (string, string) {
	if tipo == "cliente" {
		return "", inv.IDClienteInvolucrado
	}
	return inv.IDColaborador, ""
}

func inheritDate(productDate, caseDate string) string {
	if strings.TrimSpace(productDate) != "" {
		return productDate
	}
	return caseDate
}

// groupClaims agrupa los reclamos por id_producto antes del cruce para que el
// costo sea proporcional a los pares reales y no al total de colecciones.
func groupClaims(reclamos []model.Reclamo) map[string][]model.Reclamo {
	grouped := make(map[string][]model.Reclamo)
	for _, reclamo := range reclamos {
		grouped[reclamo.IDProducto] = append(grouped[reclamo.IDProducto], reclamo)
	}
	return grouped
}

func groupInvolvements(involucramientos []model.Involucramiento) map[string][]model.Involucramiento {
	grouped := make(map[string][]model.Involucramiento)
	for _, inv := range involucramientos {
		grouped[inv.IDProducto] = append(grouped[inv.IDProducto], inv)
	}
	return grouped
}
