package loader

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"fic/database"

	"github.com/jmoiron/sqlx"
)

// ReloadCatalogsHandler recarga los catálogos masivos desde disco y vuelve a
// alinear las secuencias de ID.
func ReloadCatalogsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Println("HTTP request received: Reloading detail catalogs...")

		if err := LoadAllDetailCatalogs(db); err != nil {
			msg := fmt.Sprintf("failed to reload detail catalogs: %v", err)
			log.Println(msg)
			http.Error(w, msg, http.StatusInternalServerError)
			return
		}

		tx, err := db.Beginx()
		if err != nil {
			msg := fmt.Sprintf("failed to begin transaction for sequence initialization: %v", err)
			log.Println(msg)
			http.Error(w, msg, http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		if err := database.InitializeSequenceFromMaxRiskID(tx); err != nil {
			log.Printf("WARN: Failed to re-initialize RSK sequence: %v", err)
		}
		if err := database.InitializeSequenceFromMaxNormID(tx); err != nil {
			log.Printf("WARN: Failed to re-initialize NRM sequence: %v", err)
		}

		if err := tx.Commit(); err != nil {
			msg := fmt.Sprintf("failed to commit sequence initialization: %v", err)
			log.Println(msg)
			http.Error(w, msg, http.StatusInternalServerError)
			return
		}
		log.Println("Code sequences re-initialized.")

		counts, err := database.CountDetails(db)
		if err != nil {
			log.Printf("WARN: could not count detail catalogs: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Catálogos de detalle actualizados.",
			"counts":  counts,
		})
	}
}
