// Package validators concentra los validadores de campo compartidos. Son
// funciones pasa/no-pasa: devuelven un mensaje de error o cadena vacía. El
// motor de aplanado no los invoca; se aplican antes de construir el caso.
package validators

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const dateLayout = "2006-01-02"

var (
	caseIDPattern          = regexp.MustCompile(`^\d{4}-\d{4}$`)
	reclamoIDPattern       = regexp.MustCompile(`^C\d{8}$`)
	codigoAnaliticaPattern = regexp.MustCompile(`^(43|45|46|56)\d{8}$`)
	normIDPattern          = regexp.MustCompile(`^NRM-\d{5}$`)
	riskIDPattern          = regexp.MustCompile(`^RSK-\d{6}$`)
	teamMemberIDPattern    = regexp.MustCompile(`^[A-Za-z][0-9]{5}$`)
	agencyCodePattern      = regexp.MustCompile(`^\d{6}$`)
	emailPattern           = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern           = regexp.MustCompile(`^\+?\d{6,15}$`)
	dniPattern             = regexp.MustCompile(`^\d{8}$`)
	rucPattern             = regexp.MustCompile(`^\d{11}$`)
	passportPattern        = regexp.MustCompile(`^[A-Za-z0-9]{9,12}$`)
)

func ValidateRequiredText(value, label string) string {
	if strings.TrimSpace(value) == "" {
		return "Debe ingresar " + label + "."
	}
	return ""
}

func ValidateCaseID(value string) string {
	text := strings.TrimSpace(value)
	if text == "" {
		return "Debe ingresar el número de caso."
	}
	if !caseIDPattern.MatchString(text) {
		return "El número de caso debe seguir el formato AAAA-NNNN."
	}
	return ""
}

func ValidateDateText(value, label string, allowBlank bool) string {
	if strings.TrimSpace(value) == "" {
		if allowBlank {
			return ""
		}
		return "Debe ingresar " + label + "."
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return label + " debe tener el formato YYYY-MM-DD."
	}
	return ""
}

// ValidateProductDates exige ocurrencia anterior al descubrimiento y ninguna
// fecha en el futuro.
func ValidateProductDates(productoID, fechaOcurrencia, fechaDescubrimiento string) string {
	label := strings.TrimSpace(productoID)
	if label == "" {
		label = "sin ID"
	}
	occ, errOcc := time.Parse(dateLayout, strings.TrimSpace(fechaOcurrencia))
	desc, errDesc := time.Parse(dateLayout, strings.TrimSpace(fechaDescubrimiento))
	if errOcc != nil || errDesc != nil {
		return "Fechas inválidas en el producto " + label
	}
	if !occ.Before(desc) {
		return "La fecha de ocurrencia debe ser anterior a la de descubrimiento en el producto " + label
	}
	today := time.Now()
	if occ.After(today) || desc.After(today) {
		return "Las fechas del producto " + label + " no pueden estar en el futuro"
	}
	return ""
}

// ValidateAmountText acepta montos decimales no negativos de hasta 12 dígitos.
func ValidateAmountText(value, label string, allowBlank bool) string {
	text := strings.TrimSpace(value)
	if text == "" {
		if allowBlank {
			return ""
		}
		return "Debe ingresar " + label + "."
	}
	amount, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return label + " debe ser un número válido."
	}
	if amount < 0 {
		return label + " no puede ser negativo."
	}
	digits := strings.ReplaceAll(strings.TrimLeft(text, "+"), ".", "")
	if len(digits) > 12 {
		return label + " no puede tener más de 12 dígitos."
	}
	return ""
}

// ParseAmount devuelve el monto como float64, o 0 para blanco/ilegible.
// Los CSV exportados llevan las cadenas originales; este valor solo alimenta
// los totales del encabezado del informe.
func ParseAmount(value string) float64 {
	text := strings.TrimSpace(value)
	if text == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", ""), 64)
	if err != nil || amount < 0 {
		return 0
	}
	return amount
}

func ValidateEmailList(value, label string) string {
	for _, item := range strings.Split(value, ";") {
		email := strings.TrimSpace(item)
		if email == "" {
			continue
		}
		if !emailPattern.MatchString(email) {
			return label + " contiene un correo inválido: " + email
		}
	}
	return ""
}

func ValidatePhoneList(value, label string) string {
	for _, item := range strings.Split(value, ";") {
		phone := strings.TrimSpace(item)
		if phone == "" {
			continue
		}
		if !phonePattern.MatchString(phone) {
			return label + " contiene un teléfono inválido: " + phone
		}
	}
	return ""
}

func ValidateReclamoID(value string) string {
	text := strings.TrimSpace(value)
	if text == "" {
		return "Debe ingresar el ID de reclamo."
	}
	if !reclamoIDPattern.MatchString(text) {
		return "El ID de reclamo debe tener el formato CXXXXXXXX."
	}
	return ""
}

func ValidateCodigoAnalitica(value string) string {
	text := strings.TrimSpace(value)
	if text == "" {
		return "Debe ingresar el código de analítica."
	}
	if !codigoAnaliticaPattern.MatchString(text) {
		return "El código de analítica debe tener 10 dígitos y comenzar con 43, 45, 46 o 56."
	}
	return ""
}

func ValidateNormID(value string) string {
	text := strings.TrimSpace(value)
	if text == "" {
		return "Debe ingresar el ID de norma."
	}
	if !normIDPattern.MatchString(text) {
		return "El ID de norma debe seguir el formato NRM-XXXXX."
	}
	return ""
}

func ValidateRiskID(value string) string {
	text := strings.TrimSpace(value)
	if text == "" {
		return "Debe ingresar el ID de riesgo."
	}
	if !riskIDPattern.MatchString(text) {
		return "El ID de riesgo debe seguir el formato RSK-XXXXXX."
	}
	return ""
}

func ValidateClientID(tipoID, value string) string {
	text := strings.TrimSpace(value)
	if text == "" {
		return "Debe ingresar el ID del cliente."
	}
	switch strings.ToLower(strings.TrimSpace(tipoID)) {
	case "dni":
		if !dniPattern.MatchString(text) {
			return "El DNI debe tener exactamente 8 dígitos."
		}
	case "ruc":
		if !rucPattern.MatchString(text) {
			return "El RUC debe tener exactamente 11 dígitos."
		}
	case "pasaporte":
		if !passportPattern.MatchString(text) {
			return "El pasaporte debe ser alfanumérico y tener entre 9 y 12 caracteres."
		}
	case "carné de extranjería":
		if !passportPattern.MatchString(text) {
			return "El carné de extranjería debe ser alfanumérico y tener entre 9 y 12 caracteres."
		}
	default:
		if len(text) < 4 {
			return "El ID del cliente debe tener al menos 4 caracteres."
		}
	}
	return ""
}

func ValidateTeamMemberID(value string) string {
	text := strings.TrimSpace(value)
	if text == "" {
		return "Debe ingresar el ID del colaborador."
	}
	if !teamMemberIDPattern.MatchString(text) {
		return "El ID del colaborador debe iniciar con una letra seguida de 5 dígitos."
	}
	return ""
}

func ValidateAgencyCode(value string, allowBlank bool) string {
	text := strings.TrimSpace(value)
	if text == "" {
		if allowBlank {
			return ""
		}
		return "Debe ingresar el código de agencia."
	}
	if !agencyCodePattern.MatchString(text) {
		return "El código de agencia debe tener exactamente 6 dígitos."
	}
	return ""
}

// NormalizeWithoutAccents descompone a NFKD y elimina las marcas combinantes,
// para comparar valores de catálogo sin sensibilidad a tildes.
func NormalizeWithoutAccents(value string) string {
	stripper := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(stripper, value)
	if err != nil {
		return value
	}
	return normalized
}

// SanitizeRichText deja solo texto plano: normaliza fines de línea, elimina
// caracteres de control (salvo tab y salto de línea) y recorta a maxChars
// runas cuando maxChars > 0.
func SanitizeRichText(value string, maxChars int) string {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	value = strings.ReplaceAll(value, "\r", "\n")
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
	if maxChars > 0 {
		runes := []rune(cleaned)
		if len(runes) > maxChars {
			cleaned = string(runes[:maxChars])
		}
	}
	return cleaned
}
