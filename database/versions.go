package database

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CaseVersion es una instantánea del formulario guardada en SQLite. El
// payload es el JSON completo del caso tal como lo envió el navegador.
type CaseVersion struct {
	ID        string `db:"id" json:"id"`
	CaseID    string `db:"case_id" json:"case_id"`
	CreatedAt string `db:"created_at" json:"created_at"`
	Payload   string `db:"payload" json:"payload,omitempty"`
}

// SaveCaseVersion inserta una instantánea nueva y devuelve su id.
func SaveCaseVersion(db *sqlx.DB, caseID, payload string) (string, error) {
	if caseID == "" {
		caseID = "caso"
	}
	id := uuid.NewString()
	createdAt := time.Now().Format(time.RFC3339)
	_, err := db.Exec(
		`INSERT INTO case_versions (id, case_id, created_at, payload) VALUES (?, ?, ?, ?)`,
		id, caseID, createdAt, payload,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save case version for '%s': %w", caseID, err)
	}
	return id, nil
}

// ListCaseVersions devuelve las instantáneas de un caso, la más reciente
// primero, sin el payload.
func ListCaseVersions(db *sqlx.DB, caseID string) ([]CaseVersion, error) {
	var versions []CaseVersion
	err := db.Select(&versions,
		`SELECT id, case_id, created_at, '' AS payload FROM case_versions
		 WHERE case_id = ? ORDER BY created_at DESC`, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list case versions for '%s': %w", caseID, err)
	}
	return versions, nil
}

// GetCaseVersion carga una instantánea completa por id.
func GetCaseVersion(db *sqlx.DB, id string) (*CaseVersion, error) {
	var version CaseVersion
	err := db.Get(&version,
		`SELECT id, case_id, created_at, payload FROM case_versions WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get case version '%s': %w", id, err)
	}
	return &version, nil
}

// PruneCaseVersions elimina las instantáneas que exceden maxPerCase por caso
// y las más antiguas que maxAgeDays.
func PruneCaseVersions(db *sqlx.DB, maxPerCase, maxAgeDays int) error {
	if maxAgeDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -maxAgeDays).Format(time.RFC3339)
		result, err := db.Exec(`DELETE FROM case_versions WHERE created_at < ?`, cutoff)
		if err != nil {
			return fmt.Errorf("failed to prune old case versions: %w", err)
		}
		if removed, err := result.RowsAffected(); err == nil && removed > 0 {
			log.Printf("INFO: [Versions] Pruned %d versions older than %d days", removed, maxAgeDays)
		}
	}
	if maxPerCase > 0 {
		_, err := db.Exec(`
			DELETE FROM case_versions WHERE id IN (
				SELECT id FROM (
					SELECT id,
					       ROW_NUMBER() OVER (PARTITION BY case_id ORDER BY created_at DESC) AS pos
					FROM case_versions
				) WHERE pos > ?
			)`, maxPerCase)
		if err != nil {
			return fmt.Errorf("failed to prune excess case versions: %w", err)
		}
	}
	return nil
}
