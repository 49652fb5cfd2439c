package model

// Caso contiene los atributos generales del caso investigado.
type Caso struct {
	IDCaso                string `db:"id_caso" json:"id_caso"`
	TipoInforme           string `db:"tipo_informe" json:"tipo_informe"`
	Categoria1            string `db:"categoria1" json:"categoria1"`
	Categoria2            string `db:"categoria2" json:"categoria2"`
	Modalidad             string `db:"modalidad" json:"modalidad"`
	Canal                 string `db:"canal" json:"canal"`
	Proceso               string `db:"proceso" json:"proceso"`
	FechaDeOcurrencia     string `db:"fecha_de_ocurrencia" json:"fecha_de_ocurrencia"`
	FechaDeDescubrimiento string `db:"fecha_de_descubrimiento" json:"fecha_de_descubrimiento"`
	CentroCostos          string `db:"centro_costos" json:"centro_costos"`
	MatriculaInvestigador string `db:"matricula_investigador" json:"matricula_investigador"`
	InvestigadorNombre    string `db:"investigador_nombre" json:"investigador_nombre"`
	InvestigadorCargo     string `db:"investigador_cargo" json:"investigador_cargo"`
	Lugar                 string `db:"lugar" json:"lugar"`
	FechaInforme          string `db:"fecha_informe" json:"fecha_informe"`
}

type Cliente struct {
	IDCliente   string `db:"id_cliente" json:"id_cliente"`
	TipoID      string `db:"tipo_id" json:"tipo_id"`
	Nombres     string `db:"nombres" json:"nombres"`
	Apellidos   string `db:"apellidos" json:"apellidos"`
	Flag        string `db:"flag" json:"flag"`
	Telefonos   string `db:"telefonos" json:"telefonos"`
	Correos     string `db:"correos" json:"correos"`
	Direcciones string `db:"direcciones" json:"direcciones"`
	Accionado   string `db:"accionado" json:"accionado"`
}

type Colaborador struct {
	IDColaborador        string `db:"id_colaborador" json:"id_colaborador"`
	Flag                 string `db:"flag" json:"flag"`
	Nombres              string `db:"nombres" json:"nombres"`
	Apellidos            string `db:"apellidos" json:"apellidos"`
	Division             string `db:"division" json:"division"`
	Area                 string `db:"area" json:"area"`
	Servicio             string `db:"servicio" json:"servicio"`
	Puesto               string `db:"puesto" json:"puesto"`
	NombreAgencia        string `db:"nombre_agencia" json:"nombre_agencia"`
	CodigoAgencia        string `db:"codigo_agencia" json:"codigo_agencia"`
	TipoFalta            string `db:"tipo_falta" json:"tipo_falta"`
	TipoSancion          string `db:"tipo_sancion" json:"tipo_sancion"`
	FechaCartaInmediatez string `db:"fecha_carta_inmediatez" json:"fecha_carta_inmediatez"`
	FechaCartaRenuncia   string `db:"fecha_carta_renuncia" json:"fecha_carta_renuncia"`
}

type Producto struct {
	IDProducto         string `db:"id_producto" json:"id_producto"`
	IDCliente          string `db:"id_cliente" json:"id_cliente"`
	TipoProducto       string `db:"tipo_producto" json:"tipo_producto"`
	Canal              string `db:"canal" json:"canal"`
	Proceso            string `db:"proceso" json:"proceso"`
	Categoria1         string `db:"categoria1" json:"categoria1"`
	Categoria2         string `db:"categoria2" json:"categoria2"`
	Modalidad          string `db:"modalidad" json:"modalidad"`
	FechaOcurrencia    string `db:"fecha_ocurrencia" json:"fecha_ocurrencia"`
	FechaDescubrimiento string `db:"fecha_descubrimiento" json:"fecha_descubrimiento"`
	TipoMoneda         string `db:"tipo_moneda" json:"tipo_moneda"`
	MontoInvestigado   string `db:"monto_investigado" json:"monto_investigado"`
	MontoPerdidaFraude string `db:"monto_perdida_fraude" json:"monto_perdida_fraude"`
	MontoFallaProcesos string `db:"monto_falla_procesos" json:"monto_falla_procesos"`
	MontoContingencia  string `db:"monto_contingencia" json:"monto_contingencia"`
	MontoRecuperado    string `db:"monto_recuperado" json:"monto_recuperado"`
	MontoPagoDeuda     string `db:"monto_pago_deuda" json:"monto_pago_deuda"`
}

type Reclamo struct {
	IDProducto      string `db:"id_producto" json:"id_producto"`
	IDReclamo       string `db:"id_reclamo" json:"id_reclamo"`
	NombreAnalitica string `db:"nombre_analitica" json:"nombre_analitica"`
	CodigoAnalitica string `db:"codigo_analitica" json:"codigo_analitica"`
}

// Involucramiento vincula un producto con exactamente una parte involucrada:
// un colaborador (id_colaborador) o un cliente (id_cliente_involucrado).
type Involucramiento struct {
	IDProducto          string `db:"id_producto" json:"id_producto"`
	IDColaborador       string `db:"id_colaborador" json:"id_colaborador"`
	IDClienteInvolucrado string `db:"id_cliente_involucrado" json:"id_cliente_involucrado"`
	TipoInvolucrado     string `db:"tipo_involucrado" json:"tipo_involucrado"`
	MontoAsignado       string `db:"monto_asignado" json:"monto_asignado"`
	CodOperation        string `db:"cod_operation" json:"cod_operation"`
}

type Riesgo struct {
	IDRiesgo           string `db:"id_riesgo" json:"id_riesgo"`
	Lider              string `db:"lider" json:"lider"`
	Criticidad         string `db:"criticidad" json:"criticidad"`
	ExposicionResidual string `db:"exposicion_residual" json:"exposicion_residual"`
	PlanesAccion       string `db:"planes_accion" json:"planes_accion"`
}

type Norma struct {
	IDNorma       string `db:"id_norma" json:"id_norma"`
	Descripcion   string `db:"descripcion" json:"descripcion"`
	FechaVigencia string `db:"fecha_vigencia" json:"fecha_vigencia"`
}

// Encabezado permite sobreescribir los datos de cabecera del informe.
type Encabezado struct {
	AreaReporte        string `json:"area_reporte"`
	FechaReporte       string `json:"fecha_reporte"`
	TipologiaEvento    string `json:"tipologia_evento"`
	Referencia         string `json:"referencia"`
	CentroCostos       string `json:"centro_costos"`
	ProcesosImpactados string `json:"procesos_impactados"`
}

type Operacion struct {
	CodOperation string `json:"cod_operation"`
	Fecha        string `json:"fecha"`
	Monto        string `json:"monto"`
	Descripcion  string `json:"descripcion"`
}

type Anexo struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Ruta        string `json:"ruta"`
}

type Firma struct {
	Nombre string `json:"nombre"`
	Cargo  string `json:"cargo"`
}
