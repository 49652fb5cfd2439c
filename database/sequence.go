package database

import (
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// NextSequenceInTx entrega el siguiente correlativo de la secuencia pedida
// formateado como prefijo + número con relleno (RSK-000123, NRM-00045).
func NextSequenceInTx(tx *sqlx.Tx, name, prefix string, padding int) (string, error) {
	var lastNo int
	err := tx.Get(&lastNo, "SELECT last_no FROM code_sequences WHERE name = ?", name)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("sequence '%s' not found", name)
		}
		return "", fmt.Errorf("failed to get sequence '%s': %w", name, err)
	}

	newNo := lastNo + 1
	if _, err := tx.Exec(`UPDATE code_sequences SET last_no = ? WHERE name = ?`, newNo, name); err != nil {
		return "", fmt.Errorf("failed to update sequence '%s': %w", name, err)
	}

	format := fmt.Sprintf("%s%%0%dd", prefix, padding)
	return fmt.Sprintf(format, newNo), nil
}

// InitializeSequenceFromMaxRiskID alinea la secuencia RSK con el mayor
// id_riesgo ya cargado en el catálogo.
func InitializeSequenceFromMaxRiskID(tx *sqlx.Tx) error {
	return initializeSequenceFromMax(tx, "RSK", "RSK-", "risk_details", "id_riesgo")
}

// InitializeSequenceFromMaxNormID alinea la secuencia NRM con el mayor
// id_norma ya cargado en el catálogo.
func InitializeSequenceFromMaxNormID(tx *sqlx.Tx) error {
	return initializeSequenceFromMax(tx, "NRM", "NRM-", "norm_details", "id_norma")
}

func initializeSequenceFromMax(tx *sqlx.Tx, name, prefix, table, column string) error {
	var maxCode sql.NullString
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s LIKE '%s%%' ORDER BY %s DESC LIMIT 1",
		column, table, column, prefix, column,
	)
	err := tx.Get(&maxCode, query)

	maxNum := 0
	if err != nil {
		if err != sql.ErrNoRows {
			return err
		}
	}

	if maxCode.Valid && strings.HasPrefix(maxCode.String, prefix) {
		numPart := strings.TrimPrefix(maxCode.String, prefix)
		maxNum, _ = strconv.Atoi(numPart)
	}

	log.Printf("INFO: [Sequence] Setting '%s' last_no to %d", name, maxNum)

	_, err = tx.Exec(`UPDATE code_sequences SET last_no = ? WHERE name = ?`, maxNum, name)
	return err
}
