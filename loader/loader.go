// Package loader inicializa la base local: aplica el esquema y carga los
// catálogos de detalle desde los CSV masivos colocados junto al ejecutable.
package loader

import (
	"fmt"
	"log"
	"os"

	"fic/database"
	"fic/parsers"

	"github.com/jmoiron/sqlx"
)

// Rutas por defecto de los CSV masivos (junto al ejecutable).
const (
	ClientDetailsPath  = "clientes_masivos.csv"
	TeamDetailsPath    = "colaboradores_masivos.csv"
	ProductDetailsPath = "productos_masivos.csv"
	RiskDetailsPath    = "riesgos_masivos.csv"
	NormDetailsPath    = "normas_masivas.csv"
	ClaimDetailsPath   = "reclamos_masivos.csv"
)

// InitDatabase aplica el esquema, carga los catálogos disponibles e
// inicializa las secuencias de ID. Un CSV ausente solo genera un WARN.
func InitDatabase(db *sqlx.DB) error {
	log.Println("Applying database schema...")
	if err := applySchema(db); err != nil {
		return fmt.Errorf("failed to apply schema.sql: %w", err)
	}
	log.Println("Schema applied successfully.")

	if err := LoadAllDetailCatalogs(db); err != nil {
		return err
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for sequence initialization: %w", err)
	}
	defer tx.Rollback()

	if err := database.InitializeSequenceFromMaxRiskID(tx); err != nil {
		log.Printf("WARN: Failed to initialize RSK sequence: %v", err)
	}
	if err := database.InitializeSequenceFromMaxNormID(tx); err != nil {
		log.Printf("WARN: Failed to initialize NRM sequence: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sequence initialization: %w", err)
	}
	log.Println("Code sequences initialized.")

	return nil
}

func applySchema(db *sqlx.DB) error {
	schemaBytes, err := os.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("could not read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaBytes)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// LoadAllDetailCatalogs carga cada CSV masivo presente en disco.
func LoadAllDetailCatalogs(db *sqlx.DB) error {
	loaders := []struct {
		path string
		load func(*sqlx.DB, string) (int, error)
	}{
		{ClientDetailsPath, LoadClientDetails},
		{TeamDetailsPath, LoadTeamDetails},
		{ProductDetailsPath, LoadProductDetails},
		{RiskDetailsPath, LoadRiskDetails},
		{NormDetailsPath, LoadNormDetails},
		{ClaimDetailsPath, LoadClaimDetails},
	}
	for _, entry := range loaders {
		if _, err := os.Stat(entry.path); os.IsNotExist(err) {
			log.Printf("WARN: %s not found, skipping.", entry.path)
			continue
		}
		log.Printf("Loading %s...", entry.path)
		count, err := entry.load(db, entry.path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", entry.path, err)
		}
		log.Printf("Inserted or replaced %d rows from %s", count, entry.path)
	}
	return nil
}

func LoadClientDetails(db *sqlx.DB, path string) (count int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer file.Close()

	details, err := parsers.ParseClientDetailsCSV(file)
	if err != nil {
		return 0, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { err = finishTx(tx, "client_details", err) }()

	for _, detail := range details {
		if err = database.UpsertClientDetailInTx(tx, detail); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func LoadTeamDetails(db *sqlx.DB, path string) (count int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer file.Close()

	details, err := parsers.ParseTeamDetailsCSV(file)
	if err != nil {
		return 0, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { err = finishTx(tx, "team_details", err) }()

	for _, detail := range details {
		if err = database.UpsertTeamDetailInTx(tx, detail); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func LoadProductDetails(db *sqlx.DB, path string) (count int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer file.Close()

	details, err := parsers.ParseProductDetailsCSV(file)
	if err != nil {
		return 0, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { err = finishTx(tx, "product_details", err) }()

	for _, detail := range details {
		if err = database.UpsertProductDetailInTx(tx, detail); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func LoadRiskDetails(db *sqlx.DB, path string) (count int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer file.Close()

	details, err := parsers.ParseRiskDetailsCSV(file)
	if err != nil {
		return 0, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { err = finishTx(tx, "risk_details", err) }()

	for _, detail := range details {
		if err = database.UpsertRiskDetailInTx(tx, detail); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func LoadNormDetails(db *sqlx.DB, path string) (count int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer file.Close()

	details, err := parsers.ParseNormDetailsCSV(file)
	if err != nil {
		return 0, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { err = finishTx(tx, "norm_details", err) }()

	for _, detail := range details {
		if err = database.UpsertNormDetailInTx(tx, detail); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func LoadClaimDetails(db *sqlx.DB, path string) (count int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer file.Close()

	details, err := parsers.ParseClaimDetailsCSV(file)
	if err != nil {
		return 0, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { err = finishTx(tx, "claim_details", err) }()

	for _, detail := range details {
		if err = database.UpsertClaimDetailInTx(tx, detail); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// finishTx confirma o revierte según el error acumulado del llamador.
func finishTx(tx *sqlx.Tx, label string, err error) error {
	if err != nil {
		log.Printf("Rolling back transaction for %s due to error: %v", label, err)
		tx.Rollback()
		return err
	}
	if commitErr := tx.Commit(); commitErr != nil {
		log.Printf("Error committing transaction for %s: %v", label, commitErr)
		return commitErr
	}
	return nil
}
