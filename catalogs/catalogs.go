// Package catalogs define los valores permitidos de los campos de catálogo.
// Las listas vienen de la taxonomía corporativa vigente a 2025; el orden se
// respeta porque la interfaz las muestra tal cual.
package catalogs

import "sort"

// Taxonomia mapea categoría nivel 1 -> nivel 2 -> modalidades.
var Taxonomia = map[string]map[string][]string{
	"Riesgo de Fraude": {
		"Fraude Interno": {
			"Apropiación de fondos",
			"Transferencia ilegal de fondos",
			"Solicitud fraudulenta",
			"Hurto",
			"Fraude de venta de productos/servicios",
		},
		"Fraude Externo": {
			"Apropiación de fondos",
			"Estafa",
			"Extorsión",
			"Fraude en valorados",
			"Solicitud fraudulenta",
		},
	},
	"Riesgo de Ciberseguridad": {
		"Perdida de Confidencialidad": {
			"Robo de información",
			"Revelación de secreto bancario",
		},
		"Perdida de Disponibilidad": {
			"Destrucción de información",
			"Interrupción de servicio",
		},
		"Perdida de Integridad": {
			"Modificación no autorizada de información",
			"Operaciones no autorizadas",
		},
	},
	"Riesgo Legal y Cumplimiento": {
		"Abuso del mercado": {
			"Conflicto de interés",
			"Manipulación de mercado",
		},
		"Conducta de mercado": {
			"Gestión de reclamos",
			"Malas prácticas de negocio",
		},
		"Corrupción": {
			"Cohecho público",
			"Corrupción entre privados",
		},
		"Cumplimiento Normativo": {
			"Implementación de normas",
			"Reportes y requerimientos regulatorios",
		},
	},
}

var CanalList = []string{
	"A través de funcionario",
	"Agencias",
	"App IO",
	"Agentes BCP",
	"Banca Móvil",
	"Centro de contacto",
	"Homebanking",
	"Kioskos",
	"Mesa de partes",
	"Página Web Mi Negocio",
	"Página Web Yape",
	"Web Ventas Digitales",
	"No aplica",
}

var ProcesoList = []string{
	"Activación de Tarjeta de crédito",
	"Actualización de datos de cliente",
	"Afiliación al servicio",
	"Bloqueo de cuentas",
	"Compras de deuda de Tarjeta de Crédito",
	"Venta de crédito Pyme",
	"Venta de crédito hipotecario",
	"Venta de crédito comercial",
	"Venta de crédito vehicular",
	"Venta de Leasing",
	"Venta de descuento de letras",
	"Venta de Efectivo Preferente",
	"Venta de crédito digital",
	"Venta en Banca Móvil",
	"Venta en Homebanking",
}

var TipoProductoList = []string{
	"Adelanto de sueldo",
	"autodesembolso",
	"Billeteras digitales",
	"Cambios Spot",
	"Carta fianza",
	"Cartas Crédito de Exportación",
	"Cartas de Crédito de Importación",
	"Certificados bancarios",
	"Cheque de gerencia",
	"Cobranza de Exportación",
	"Cobranza de importación",
	"Cobranza de letras",
	"Comercio exterior",
	"Crédito efectivo",
	"Crédito flexible",
	"Crédito hipotecario",
	"Crédito personal",
	"Crédito Pyme",
	"Crédito vehicular",
	"Crédito a la construcción",
	"Crédito comercial",
	"CTS",
	"Cuenta a plazo",
	"Cuenta corriente",
	"Cuenta de ahorro",
	"Débito automático",
	"Depósito a plazo",
	"Depósito estructurado DTV",
	"Descuento de letras",
	"Factoring electrónico",
	"Facturas negociables",
	"Financiamiento electrónico de Compras FEC",
	"Fondos mutuos",
	"Forex Spot",
	"Forwards",
	"Forwards OM",
	"Garantías",
	"Leasing",
	"Letras y Facturas",
	"Mediano Plazo",
	"Opciones tipo de cambio",
	"Pago de haberes",
	"Pago electrónico de tributos y obligaciones",
	"Partidas pendientes",
	"Remesas migratorias",
	"Seguros optativos",
	"Servicios de recaudación",
	"Swaps",
	"Tarjeta de crédito",
	"Tarjeta de crédito digital iO",
	"Tarjeta de débito",
	"Tarjeta Solución Negocio",
	"Telecrédito",
	"Transferencias país",
	"Transferencias al exterior",
	"Transferencias del exterior",
	"Transferencias interbancarias",
	"Transversal a varios productos Banca Personas y Empresas",
	"Yape",
	"Reclamos",
	"No aplica",
}

var TipoInformeList = []string{"Gerencia", "Interno", "Credicorp"}

var TipoIDList = []string{"DNI", "Pasaporte", "RUC", "Carné de extranjería", "No aplica"}

var FlagClienteList = []string{"Involucrado", "Afectado", "No aplica"}

var FlagColaboradorList = []string{"Involucrado", "Relacionado", "No aplica"}

var TipoFaltaList = []string{"Inconducta funcional", "Negligencia funcional", "No aplica"}

var TipoSancionList = []string{
	"Amonestación",
	"Sin sanción - Cesado",
	"Despido",
	"Desvinculación",
	"Exhortación",
	"No aplica",
	"Renuncia",
	"Suspensión 1 día",
	"Suspensión 2 días",
	"Suspensión de 3 días",
	"Suspensión de 4 días",
	"Suspensión de 5 días",
}

var TipoMonedaList = []string{"Soles", "Dólares", "No aplica"}

var CriticidadList = []string{"Bajo", "Moderado", "Relevante", "Alto", "Crítico"}

var AccionadoOptions = []string{
	"Tribu Producto Afectado",
	"Tribu Canal Impactado",
	"Centro de Contacto",
	"Canal presencial",
	"Fuerza de Ventas",
	"Mesa de Partes",
	"Unidad de Fraude",
	"No aplica",
}

// Alias de encabezado aceptados en las importaciones masivas; el primero de
// cada lista es el nombre canónico.
var (
	ClientIDAliases  = []string{"IdCliente", "IDCliente"}
	TeamIDAliases    = []string{"IdColaborador", "IdTeamMember", "IDColaborador", "Id"}
	ProductIDAliases = []string{"IdProducto", "IDProducto"}
	RiskIDAliases    = []string{"IdRiesgo", "IDRiesgo"}
	NormIDAliases    = []string{"IdNorma", "IDNorma"}
	ClaimIDAliases   = []string{"IdReclamo", "IDReclamo"}
)

// Contains informa si value figura en la lista, comparación exacta.
func Contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// Modalidades devuelve las modalidades de una combinación nivel 1 / nivel 2,
// o nil si la combinación no existe.
func Modalidades(categoria1, categoria2 string) []string {
	level2, ok := Taxonomia[categoria1]
	if !ok {
		return nil
	}
	return level2[categoria2]
}

// Categorias2 devuelve las categorías nivel 2 de una categoría nivel 1.
func Categorias2(categoria1 string) []string {
	level2, ok := Taxonomia[categoria1]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(level2))
	for key := range level2 {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
