package flatten

import (
	"strings"

	"fic/casedata"
	"fic/model"
)

// DefaultEventosPlaceholder sustituye todo campo vacío en las filas de
// eventos. Es configurable desde config; no es el EmptyPart de la llave técnica.
const DefaultEventosPlaceholder = "No aplica"

// EventosHeader es el contrato canónico de columnas del CSV de eventos:
// primero el bloque heredado del formato masivo, luego el bloque nuevo con los
// nombres normalizados de entidad. El orden es fijo.
var EventosHeader = []string{
	// bloque canónico heredado
	"case_id",
	"tipo_informe",
	"categoria_1",
	"categoria_2",
	"modalidad",
	"tipo_de_producto",
	"canal",
	"proceso_impactado",
	"product_id",
	"monto_investigado",
	"tipo_moneda",
	"tipo_id_cliente_involucrado",
	"client_id_involucrado",
	"flag_cliente_involucrado",
	"nombres_cliente_involucrado",
	"apellidos_cliente_involucrado",
	"matricula_colaborador_involucrado",
	"nombres_involucrado",
	"division",
	"area",
	"servicio",
	"nombre_agencia",
	"codigo_agencia",
	"puesto",
	"tipo_de_falta",
	"tipo_sancion",
	"fecha_ocurrencia",
	"fecha_descubrimiento",
	"monto_falla_en_proceso_soles",
	"monto_contingencia_soles",
	"monto_recuperado_soles",
	"monto_pagado_soles",
	"comentario_breve",
	"comentario_amplio",
	"id_reclamo",
	"nombre_analitica",
	"codigo_analitica",
	"cod_operation",
	"telefonos_cliente_relacionado",
	"correos_cliente_relacionado",
	"direcciones_cliente_relacionado",
	"accionado_cliente_relacionado",
	// bloque nuevo
	"id_caso",
	"categoria1",
	"categoria2",
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
	"tipo_producto",
	"monto_perdida_fraude",
	"monto_falla_procesos",
	"monto_contingencia",
	"monto_recuperado",
	"monto_pago_deuda",
	"cliente_nombres",
	"cliente_apellidos",
	"cliente_tipo_id",
	"cliente_flag",
	"cliente_telefonos",
	"cliente_correos",
	"cliente_direcciones",
	"cliente_accionado",
	"colaborador_flag",
	"colaborador_nombres",
	"colaborador_apellidos",
	"colaborador_division",
	"colaborador_area",
	"colaborador_servicio",
	"colaborador_puesto",
	"colaborador_fecha_carta_inmediatez",
	"colaborador_fecha_carta_renuncia",
	"colaborador_nombre_agencia",
	"colaborador_codigo_agencia",
	"colaborador_tipo_falta",
	"colaborador_tipo_sancion",
	"monto_asignado",
}

// BuildEventosRows emite las filas de eventos completamente atribuidas: el
// mismo cruce involucramiento × reclamo de la llave técnica, pero cada fila
// carga los atributos del producto, su cliente, el reclamo y la parte
// involucrada. Todo campo en blanco se sustituye por el marcador; un valor que
// coincide literalmente con el marcador se escapa con una comilla inicial para
// seguir siendo distinguible de "ausente" al releer.
func BuildEventosRows(cd *casedata.CaseData, placeholder string) ([]map[string]string, []string) {
	if placeholder == "" {
		placeholder = DefaultEventosPlaceholder
	}

	caso := cd.Caso
	clientesByID := make(map[string]model.Cliente, len(cd.Clientes))
	for _, cliente := range cd.Clientes {
		clientesByID[cliente.IDCliente] = cliente
	}
	colaboradoresByID := make(map[string]model.Colaborador, len(cd.Colaboradores))
	for _, colaborador := range cd.Colaboradores {
		colaboradoresByID[colaborador.IDColaborador] = colaborador
	}
	claimsByProduct := groupClaims(cd.Reclamos)
	involvementsByProduct := groupInvolvements(cd.Involucramientos)

	comentarioBreve := cd.AnalisisTexto("comentario_breve")
	comentarioAmplio := cd.AnalisisTexto("comentario_amplio")

	var rows []map[string]string
	for _, producto := range cd.Productos {
		occurrence := inheritDate(producto.FechaOcurrencia, caso.FechaDeOcurrencia)
		discovery := inheritDate(producto.FechaDescubrimiento, caso.FechaDeDescubrimiento)
		cliente := clientesByID[producto.IDCliente]

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
			colaborador := colaboradoresByID[colaboradorID]
			clienteInvolucrado := clientesByID[clienteInvolucradoID]

			for _, claim := range claims {
				raw := map[string]string{
					"case_id":           caso.IDCaso,
					"tipo_informe":      caso.TipoInforme,
					"categoria_1":       coalesce(producto.Categoria1, caso.Categoria1),
					"categoria_2":       coalesce(producto.Categoria2, caso.Categoria2),
					"modalidad":         coalesce(producto.Modalidad, caso.Modalidad),
					"tipo_de_producto":  producto.TipoProducto,
					"canal":             coalesce(producto.Canal, caso.Canal),
					"proceso_impactado": coalesce(producto.Proceso, caso.Proceso),
					"product_id":        producto.IDProducto,
					"monto_investigado": producto.MontoInvestigado,
					"tipo_moneda":       producto.TipoMoneda,

					"tipo_id_cliente_involucrado":   clienteInvolucrado.TipoID,
					"client_id_involucrado":         clienteInvolucradoID,
					"flag_cliente_involucrado":      clienteInvolucrado.Flag,
					"nombres_cliente_involucrado":   clienteInvolucrado.Nombres,
					"apellidos_cliente_involucrado": clienteInvolucrado.Apellidos,

					"matricula_colaborador_involucrado": colaboradorID,
					"nombres_involucrado":               involvedName(tipo, colaborador, clienteInvolucrado),
					"division":                          colaborador.Division,
					"area":                              colaborador.Area,
					"servicio":                          colaborador.Servicio,
					"nombre_agencia":                    colaborador.NombreAgencia,
					"codigo_agencia":                    colaborador.CodigoAgencia,
					"puesto":                            colaborador.Puesto,
					"tipo_de_falta":                     colaborador.TipoFalta,
					"tipo_sancion":                      colaborador.TipoSancion,

					"fecha_ocurrencia":     occurrence,
					"fecha_descubrimiento": discovery,

					"monto_falla_en_proceso_soles": producto.MontoFallaProcesos,
					"monto_contingencia_soles":     producto.MontoContingencia,
					"monto_recuperado_soles":       producto.MontoRecuperado,
					"monto_pagado_soles":           producto.MontoPagoDeuda,

					"comentario_breve":  comentarioBreve,
					"comentario_amplio": comentarioAmplio,

					"id_reclamo":       claim.IDReclamo,
					"nombre_analitica": claim.NombreAnalitica,
					"codigo_analitica": claim.CodigoAnalitica,
					"cod_operation":    inv.CodOperation,

					"telefonos_cliente_relacionado":   cliente.Telefonos,
					"correos_cliente_relacionado":     cliente.Correos,
					"direcciones_cliente_relacionado": cliente.Direcciones,
					"accionado_cliente_relacionado":   cliente.Accionado,

					"id_caso":                 caso.IDCaso,
					"categoria1":              coalesce(producto.Categoria1, caso.Categoria1),
					"categoria2":              coalesce(producto.Categoria2, caso.Categoria2),
					"proceso":                 coalesce(producto.Proceso, caso.Proceso),
					"fecha_de_ocurrencia":     caso.FechaDeOcurrencia,
					"fecha_de_descubrimiento": caso.FechaDeDescubrimiento,
					"centro_costos":           caso.CentroCostos,
					"matricula_investigador":  caso.MatriculaInvestigador,
					"investigador_nombre":     caso.InvestigadorNombre,
					"investigador_cargo":      caso.InvestigadorCargo,

					"id_producto":            producto.IDProducto,
					"id_cliente":             producto.IDCliente,
					"id_colaborador":         colaboradorID,
					"id_cliente_involucrado": clienteInvolucradoID,
					"tipo_involucrado":       tipo,
					"tipo_producto":          producto.TipoProducto,
					"monto_perdida_fraude":   producto.MontoPerdidaFraude,
					"monto_falla_procesos":   producto.MontoFallaProcesos,
					"monto_contingencia":     producto.MontoContingencia,
					"monto_recuperado":       producto.MontoRecuperado,
					"monto_pago_deuda":       producto.MontoPagoDeuda,

					"cliente_nombres":     cliente.Nombres,
					"cliente_apellidos":   cliente.Apellidos,
					"cliente_tipo_id":     cliente.TipoID,
					"cliente_flag":        cliente.Flag,
					"cliente_telefonos":   cliente.Telefonos,
					"cliente_correos":     cliente.Correos,
					"cliente_direcciones": cliente.Direcciones,
					"cliente_accionado":   cliente.Accionado,

					"colaborador_flag":                   colaborador.Flag,
					"colaborador_nombres":                colaborador.Nombres,
					"colaborador_apellidos":              colaborador.Apellidos,
					"colaborador_division":               colaborador.Division,
					"colaborador_area":                   colaborador.Area,
					"colaborador_servicio":               colaborador.Servicio,
					"colaborador_puesto":                 colaborador.Puesto,
					"colaborador_fecha_carta_inmediatez": colaborador.FechaCartaInmediatez,
					"colaborador_fecha_carta_renuncia":   colaborador.FechaCartaRenuncia,
					"colaborador_nombre_agencia":         colaborador.NombreAgencia,
					"colaborador_codigo_agencia":         colaborador.CodigoAgencia,
					"colaborador_tipo_falta":             colaborador.TipoFalta,
					"colaborador_tipo_sancion":           colaborador.TipoSancion,

					"monto_asignado": inv.MontoAsignado,
				}

				row := make(map[string]string, len(EventosHeader))
				for _, field := range EventosHeader {
					row[field] = substitutePlaceholder(raw[field], placeholder)
				}
				rows = append(rows, row)
			}
		}
	}

	return rows, append([]string(nil), EventosHeader...)
}

// substitutePlaceholder aplica la sustitución determinista: en blanco o solo
// espacios → marcador; colisión literal con el marcador → escapado con "'".
func substitutePlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	if value == placeholder {
		return "'" + value
	}
	return value
}

func involvedName(tipo string, colaborador model.Colaborador, cliente model.Cliente) string {
	if tipo == "cliente" {
		return cliente.Nombres
	}
	return colaborador.Nombres
}

func coalesce(primary, fallback string) string {
	if strings.TrimSpace(primary) != "" {
		return primary
	}
	return fallback
}
