// Package history acumula los anexos históricos h_<tabla>.csv. Cada guardado
// adjunta las filas exportadas con los metadatos case_id y fecactualizacion,
// sin releer ni deduplicar lo ya escrito: el histórico es un registro de
// incrementos, no un estado.
package history

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fic/validators"
)

var formulaPrefixes = []string{"=", "+", "-", "@"}

// Log escribe anexos históricos bajo BaseDir. Placeholder es el token de
// celda vacía que se deja pasar sin neutralizar.
type Log struct {
	BaseDir     string
	Placeholder string
}

// SanitizeValue limpia el valor para el CSV histórico: texto plano y, si
// comienza con un prefijo de fórmula de hoja de cálculo, un apóstrofo
// inicial para neutralizarlo. El token de celda vacía pasa intacto.
func (l *Log) SanitizeValue(value string) string {
	sanitized := validators.SanitizeRichText(value, 0)
	if sanitized == l.Placeholder {
		return sanitized
	}
	for _, prefix := range formulaPrefixes {
		if strings.HasPrefix(sanitized, prefix) {
			return "'" + sanitized
		}
	}
	return sanitized
}

// Append adjunta las filas a h_<tabla>.csv con case_id y fecactualizacion al
// final de cada fila. Crea el archivo con encabezado si no existe. Devuelve
// la ruta escrita, o cadena vacía si no había filas.
func (l *Log) Append(tableName string, rows []map[string]string, header []string, caseID string, timestamp time.Time) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(l.BaseDir, 0755); err != nil {
		return "", fmt.Errorf("no se pudo crear la carpeta de históricos: %w", err)
	}
	historyPath := filepath.Join(l.BaseDir, "h_"+tableName+".csv")

	_, statErr := os.Stat(historyPath)
	writeHeader := os.IsNotExist(statErr)

	file, err := os.OpenFile(historyPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("no se pudo abrir %s: %w", filepath.Base(historyPath), err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	fullHeader := append(append([]string{}, header...), "case_id", "fecactualizacion")
	if writeHeader {
		if err := writer.Write(fullHeader); err != nil {
			return "", fmt.Errorf("no se pudo escribir el encabezado de %s: %w", filepath.Base(historyPath), err)
		}
	}

	stamp := timestamp.Format(time.RFC3339)
	for _, row := range rows {
		record := make([]string, 0, len(fullHeader))
		for _, field := range header {
			value, ok := row[field]
			if !ok {
				value = l.Placeholder
			}
			record = append(record, l.SanitizeValue(value))
		}
		record = append(record, l.SanitizeValue(caseID), l.SanitizeValue(stamp))
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("no se pudo escribir en %s: %w", filepath.Base(historyPath), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("no se pudo volcar %s: %w", filepath.Base(historyPath), err)
	}
	return historyPath, nil
}
