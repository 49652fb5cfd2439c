// Package casedata construye la representación normalizada en memoria de un
// caso a partir del payload JSON del formulario. La construcción nunca falla:
// toda colección ausente se reemplaza por su contenedor vacío y los campos
// desconocidos del payload se ignoran.
package casedata

import (
	"fmt"

	"fic/model"
)

// CaseData agrupa todas las colecciones de entidades de un caso. Se construye
// una sola vez al exportar y se lee muchas veces; la vista aplanada AsDict se
// calcula de forma perezosa y queda cacheada.
type CaseData struct {
	Caso             model.Caso
	Clientes         []model.Cliente
	Colaboradores    []model.Colaborador
	Productos        []model.Producto
	Reclamos         []model.Reclamo
	Involucramientos []model.Involucramiento
	Riesgos          []model.Riesgo
	Normas           []model.Norma
	Analisis         map[string]model.RichTextEntry
	Encabezado       model.Encabezado
	Operaciones      []model.Operacion
	Anexos           []model.Anexo
	Firmas           []model.Firma
	RecomendacionesCategorias map[string][]string

	dictCache map[string]any
}

// FromPayload nunca falla: cada sección se extrae con valores por defecto.
// La validación de campos es responsabilidad del llamador, antes de llegar aquí.
func FromPayload(payload map[string]any) *CaseData {
	cd := &CaseData{
		Analisis:                  map[string]model.RichTextEntry{},
		RecomendacionesCategorias: map[string][]string{},
	}
	if payload == nil {
		return cd
	}

	cd.Caso = casoFromMap(asMap(payload["caso"]))
	cd.Encabezado = encabezadoFromMap(asMap(payload["encabezado"]))

	for _, item := range asMapSlice(payload["clientes"]) {
		cd.Clientes = append(cd.Clientes, clienteFromMap(item))
	}
	for _, item := range asMapSlice(payload["colaboradores"]) {
		cd.Colaboradores = append(cd.Colaboradores, colaboradorFromMap(item))
	}
	for _, item := range asMapSlice(payload["productos"]) {
		cd.Productos = append(cd.Productos, productoFromMap(item))
	}
	for _, item := range asMapSlice(payload["reclamos"]) {
		cd.Reclamos = append(cd.Reclamos, reclamoFromMap(item))
	}
	for _, item := range asMapSlice(payload["involucramientos"]) {
		cd.Involucramientos = append(cd.Involucramientos, involucramientoFromMap(item))
	}
	for _, item := range asMapSlice(payload["riesgos"]) {
		cd.Riesgos = append(cd.Riesgos, riesgoFromMap(item))
	}
	for _, item := range asMapSlice(payload["normas"]) {
		cd.Normas = append(cd.Normas, normaFromMap(item))
	}
	for _, item := range asMapSlice(payload["operaciones"]) {
		cd.Operaciones = append(cd.Operaciones, model.Operacion{
			CodOperation: asString(item["cod_operation"]),
			Fecha:        asString(item["fecha"]),
			Monto:        asString(item["monto"]),
			Descripcion:  asString(item["descripcion"]),
		})
	}
	for _, item := range asMapSlice(payload["anexos"]) {
		cd.Anexos = append(cd.Anexos, model.Anexo{
			Nombre:      asString(item["nombre"]),
			Descripcion: asString(item["descripcion"]),
			Ruta:        asString(item["ruta"]),
		})
	}
	for _, item := range asMapSlice(payload["firmas"]) {
		cd.Firmas = append(cd.Firmas, model.Firma{
			Nombre: asString(item["nombre"]),
			Cargo:  asString(item["cargo"]),
		})
	}

	for key, raw := range asMap(payload["analisis"]) {
		cd.Analisis[key] = RichTextEntryFromValue(raw)
	}
	for key, raw := range asMap(payload["recomendaciones_categorias"]) {
		var values []string
		if list, ok := raw.([]any); ok {
			for _, v := range list {
				values = append(values, asString(v))
			}
		}
		cd.RecomendacionesCategorias[key] = values
	}

	return cd
}

// AsDict devuelve la vista aplanada del caso. La primera llamada la construye
// y las siguientes devuelven el mismo mapa cacheado: mutar las colecciones
// de origen después del primer render no actualiza la vista.
func (cd *CaseData) AsDict() map[string]any {
	if cd.dictCache == nil {
		cd.dictCache = map[string]any{
			"caso":             cd.Caso,
			"clientes":         cd.Clientes,
			"colaboradores":    cd.Colaboradores,
			"productos":        cd.Productos,
			"reclamos":         cd.Reclamos,
			"involucramientos": cd.Involucramientos,
			"riesgos":          cd.Riesgos,
			"normas":           cd.Normas,
			"analisis":         cd.Analisis,
		}
	}
	return cd.dictCache
}

// Get delega en la vista cacheada.
func (cd *CaseData) Get(key string) (any, bool) {
	value, ok := cd.AsDict()[key]
	return value, ok
}

// AnalisisTexto devuelve el texto plano de un campo narrativo ("" si no existe).
func (cd *CaseData) AnalisisTexto(key string) string {
	if entry, ok := cd.Analisis[key]; ok {
		return entry.Text
	}
	return ""
}

// RichTextEntryFromValue acepta el contrato de entrada de texto enriquecido:
// una cadena simple, o un mapa {text, tags:[{tag,start,end}]}.
func RichTextEntryFromValue(raw any) model.RichTextEntry {
	switch value := raw.(type) {
	case string:
		return model.RichTextEntry{Text: value}
	case map[string]any:
		entry := model.RichTextEntry{Text: asString(value["text"])}
		for _, tagRaw := range asMapSlice(value["tags"]) {
			entry.Tags = append(entry.Tags, model.TagRef{
				Tag:   asString(tagRaw["tag"]),
				Start: asString(tagRaw["start"]),
				End:   asString(tagRaw["end"]),
			})
		}
		return entry
	case model.RichTextEntry:
		return value
	default:
		return model.RichTextEntry{}
	}
}

func casoFromMap(m map[string]any) model.Caso {
	return model.Caso{
		IDCaso:                asString(m["id_caso"]),
		TipoInforme:           asString(m["tipo_informe"]),
		Categoria1:            asString(m["categoria1"]),
		Categoria2:            asString(m["categoria2"]),
		Modalidad:             asString(m["modalidad"]),
		Canal:                 asString(m["canal"]),
		Proceso:               asString(m["proceso"]),
		FechaDeOcurrencia:     asString(m["fecha_de_ocurrencia"]),
		FechaDeDescubrimiento: asString(m["fecha_de_descubrimiento"]),
		CentroCostos:          asString(m["centro_costos"]),
		MatriculaInvestigador: asString(m["matricula_investigador"]),
		InvestigadorNombre:    asString(m["investigador_nombre"]),
		InvestigadorCargo:     asString(m["investigador_cargo"]),
		Lugar:                 asString(m["lugar"]),
		FechaInforme:          asString(m["fecha_informe"]),
	}
}

func encabezadoFromMap(m map[string]any) model.Encabezado {
	return model.Encabezado{
		AreaReporte:        asString(m["area_reporte"]),
		FechaReporte:       asString(m["fecha_reporte"]),
		TipologiaEvento:    asString(m["tipologia_evento"]),
		Referencia:         asString(m["referencia"]),
		CentroCostos:       asString(m["centro_costos"]),
		ProcesosImpactados: asString(m["procesos_impactados"]),
	}
}

func clienteFromMap(m map[string]any) model.Cliente {
	return model.Cliente{
		IDCliente:   asString(m["id_cliente"]),
		TipoID:      asString(m["tipo_id"]),
		Nombres:     asString(m["nombres"]),
		Apellidos:   asString(m["apellidos"]),
		Flag:        asString(m["flag"]),
		Telefonos:   asString(m["telefonos"]),
		Correos:     asString(m["correos"]),
		Direcciones: asString(m["direcciones"]),
		Accionado:   asString(m["accionado"]),
	}
}

func colaboradorFromMap(m map[string]any) model.Colaborador {
	return model.Colaborador{
		IDColaborador:        asString(m["id_colaborador"]),
		Flag:                 asString(m["flag"]),
		Nombres:              asString(m["nombres"]),
		Apellidos:            asString(m["apellidos"]),
		Division:             asString(m["division"]),
		Area:                 asString(m["area"]),
		Servicio:             asString(m["servicio"]),
		Puesto:               asString(m["puesto"]),
		NombreAgencia:        asString(m["nombre_agencia"]),
		CodigoAgencia:        asString(m["codigo_agencia"]),
		TipoFalta:            asString(m["tipo_falta"]),
		TipoSancion:          asString(m["tipo_sancion"]),
		FechaCartaInmediatez: asString(m["fecha_carta_inmediatez"]),
		FechaCartaRenuncia:   asString(m["fecha_carta_renuncia"]),
	}
}

func productoFromMap(m map[string]any) model.Producto {
	return model.Producto{
		IDProducto:          asString(m["id_producto"]),
		IDCliente:           asString(m["id_cliente"]),
		TipoProducto:        asString(m["tipo_producto"]),
		Canal:               asString(m["canal"]),
		Proceso:             asString(m["proceso"]),
		Categoria1:          asString(m["categoria1"]),
		Categoria2:          asString(m["categoria2"]),
		Modalidad:           asString(m["modalidad"]),
		FechaOcurrencia:     asString(m["fecha_ocurrencia"]),
		FechaDescubrimiento: asString(m["fecha_descubrimiento"]),
		TipoMoneda:          asString(m["tipo_moneda"]),
		MontoInvestigado:    asString(m["monto_investigado"]),
		MontoPerdidaFraude:  asString(m["monto_perdida_fraude"]),
		MontoFallaProcesos:  asString(m["monto_falla_procesos"]),
		MontoContingencia:   asString(m["monto_contingencia"]),
		MontoRecuperado:     asString(m["monto_recuperado"]),
		MontoPagoDeuda:      asString(m["monto_pago_deuda"]),
	}
}

func reclamoFromMap(m map[string]any) model.Reclamo {
	return model.Reclamo{
		IDProducto:      asString(m["id_producto"]),
		IDReclamo:       asString(m["id_reclamo"]),
		NombreAnalitica: asString(m["nombre_analitica"]),
		CodigoAnalitica: asString(m["codigo_analitica"]),
	}
}

func involucramientoFromMap(m map[string]any) model.Involucramiento {
	inv := model.Involucramiento{
		IDProducto:           asString(m["id_producto"]),
		IDColaborador:        asString(m["id_colaborador"]),
		IDClienteInvolucrado: asString(m["id_cliente_involucrado"]),
		TipoInvolucrado:      asString(m["tipo_involucrado"]),
		MontoAsignado:        asString(m["monto_asignado"]),
		CodOperation:         asString(m["cod_operation"]),
	}
	// Alias heredado del formato canónico de eventos.
	if inv.TipoInvolucrado == "" {
		inv.TipoInvolucrado = asString(m["cliente_flag"])
	}
	return inv
}

func riesgoFromMap(m map[string]any) model.Riesgo {
	return model.Riesgo{
		IDRiesgo:           asString(m["id_riesgo"]),
		Lider:              asString(m["lider"]),
		Criticidad:         asString(m["criticidad"]),
		ExposicionResidual: asString(m["exposicion_residual"]),
		PlanesAccion:       asString(m["planes_accion"]),
	}
}

func normaFromMap(m map[string]any) model.Norma {
	return model.Norma{
		IDNorma:       asString(m["id_norma"]),
		Descripcion:   asString(m["descripcion"]),
		FechaVigencia: asString(m["fecha_vigencia"]),
	}
}

func asMap(raw any) map[string]any {
	if m, ok := raw.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// asMapSlice descarta los elementos que no son mapas en lugar de fallar.
func asMapSlice(raw any) []map[string]any {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var result []map[string]any
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			result = append(result, m)
		}
	}
	return result
}

func asString(raw any) string {
	switch value := raw.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		// json decodifica números como float64; el formulario manda ids numéricos a veces.
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%v", value)
	case bool:
		if value {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", value)
	}
}
