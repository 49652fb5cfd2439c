package model

// Catálogos de detalle cargados desde las importaciones masivas. Sirven para
// autocompletar las secciones del formulario a partir de un ID conocido.

type ClientDetail struct {
	IDCliente   string `db:"id_cliente" json:"id_cliente"`
	TipoID      string `db:"tipo_id" json:"tipo_id"`
	Nombres     string `db:"nombres" json:"nombres"`
	Apellidos   string `db:"apellidos" json:"apellidos"`
	Telefonos   string `db:"telefonos" json:"telefonos"`
	Correos     string `db:"correos" json:"correos"`
	Direcciones string `db:"direcciones" json:"direcciones"`
}

type TeamDetail struct {
	IDColaborador string `db:"id_colaborador" json:"id_colaborador"`
	Nombres       string `db:"nombres" json:"nombres"`
	Apellidos     string `db:"apellidos" json:"apellidos"`
	Division      string `db:"division" json:"division"`
	Area          string `db:"area" json:"area"`
	Servicio      string `db:"servicio" json:"servicio"`
	Puesto        string `db:"puesto" json:"puesto"`
	NombreAgencia string `db:"nombre_agencia" json:"nombre_agencia"`
	CodigoAgencia string `db:"codigo_agencia" json:"codigo_agencia"`
}

type ProductDetail struct {
	IDProducto   string `db:"id_producto" json:"id_producto"`
	IDCliente    string `db:"id_cliente" json:"id_cliente"`
	TipoProducto string `db:"tipo_producto" json:"tipo_producto"`
	Canal        string `db:"canal" json:"canal"`
	Proceso      string `db:"proceso" json:"proceso"`
}

type RiskDetail struct {
	IDRiesgo           string `db:"id_riesgo" json:"id_riesgo"`
	Lider              string `db:"lider" json:"lider"`
	Criticidad         string `db:"criticidad" json:"criticidad"`
	ExposicionResidual string `db:"exposicion_residual" json:"exposicion_residual"`
	PlanesAccion       string `db:"planes_accion" json:"planes_accion"`
}

type NormDetail struct {
	IDNorma       string `db:"id_norma" json:"id_norma"`
	Descripcion   string `db:"descripcion" json:"descripcion"`
	FechaVigencia string `db:"fecha_vigencia" json:"fecha_vigencia"`
}

type ClaimDetail struct {
	IDReclamo       string `db:"id_reclamo" json:"id_reclamo"`
	IDProducto      string `db:"id_producto" json:"id_producto"`
	NombreAnalitica string `db:"nombre_analitica" json:"nombre_analitica"`
	CodigoAnalitica string `db:"codigo_analitica" json:"codigo_analitica"`
}
