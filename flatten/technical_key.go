// Package flatten aplana las relaciones producto/reclamo/involucramiento de un
// caso en filas planas de exportación. Ninguna operación de este paquete falla
// ante datos relacionales incompletos: las relaciones ausentes degradan a
// marcadores de posición. La validación estricta ocurre antes, en validators.
package flatten

import "strings"

// EmptyPart es el marcador de componente vacío dentro de la llave técnica.
// No confundir con el marcador configurable de las filas de eventos.
const EmptyPart = "-"

// TechnicalKey identifica una combinación relacional:
// (caso, producto, cliente, involucrado, fecha de ocurrencia, reclamo).
type TechnicalKey [6]string

// NormalizeID recorta y pasa a mayúsculas un identificador libre.
func NormalizeID(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// BuildTechnicalKey arma la llave técnica sustituyendo EmptyPart en los
// componentes en blanco. La fecha solo se recorta, no se normaliza.
func BuildTechnicalKey(caseID, productID, clientID, partyID, occurrenceDate, claimID string) TechnicalKey {
	occurrence := strings.TrimSpace(occurrenceDate)
	if occurrence == "" {
		occurrence = EmptyPart
	}
	return TechnicalKey{
		normalizeOrEmpty(caseID),
		normalizeOrEmpty(productID),
		normalizeOrEmpty(clientID),
		normalizeOrEmpty(partyID),
		occurrence,
		normalizeOrEmpty(claimID),
	}
}

// ExpandTechnicalKeys genera el producto cartesiano
// clientes × colaboradores × reclamos para un producto y devuelve una llave
// normalizada por combinación. Las colecciones vacías aportan un único
// componente EmptyPart para que siempre exista al menos una llave.
func ExpandTechnicalKeys(caseID, productID string, clientIDs, partyIDs []string, occurrenceDate string, claimIDs []string) []TechnicalKey {
	clients := normalizeCollection(clientIDs)
	parties := normalizeCollection(partyIDs)
	claims := normalizeCollection(claimIDs)

	keys := make([]TechnicalKey, 0, len(clients)*len(parties)*len(claims))
	for _, clientID := range clients {
		for _, partyID := range parties {
			for _, claimID := range claims {
				keys = append(keys, BuildTechnicalKey(caseID, productID, clientID, partyID, occurrenceDate, claimID))
			}
		}
	}
	return keys
}

func normalizeOrEmpty(value string) string {
	if normalized := NormalizeID(value); normalized != "" {
		return normalized
	}
	return EmptyPart
}

func normalizeCollection(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		text := strings.TrimSpace(value)
		if text == "" || text == EmptyPart {
			normalized = append(normalized, EmptyPart)
			continue
		}
		normalized = append(normalized, NormalizeID(text))
	}
	if len(normalized) == 0 {
		return []string{EmptyPart}
	}
	return normalized
}
