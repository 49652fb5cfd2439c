package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"fic/casedata"
	"fic/catalogs"
	"fic/config"
	"fic/database"
	"fic/history"
	"fic/validators"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// ValidateCase aplica los validadores de campo al caso completo. Devuelve
// errores (bloquean el guardado) y advertencias (no bloquean).
func ValidateCase(cd *casedata.CaseData) (errors []string, warnings []string) {
	appendIf := func(list []string, message string) []string {
		if message != "" {
			return append(list, message)
		}
		return list
	}

	errors = appendIf(errors, validators.ValidateCaseID(cd.Caso.IDCaso))
	errors = appendIf(errors, validators.ValidateDateText(cd.Caso.FechaDeOcurrencia, "la fecha de ocurrencia del caso", true))
	errors = appendIf(errors, validators.ValidateDateText(cd.Caso.FechaDeDescubrimiento, "la fecha de descubrimiento del caso", true))
	if cd.Caso.MatriculaInvestigador != "" {
		errors = appendIf(errors, validators.ValidateTeamMemberID(cd.Caso.MatriculaInvestigador))
	}
	if cd.Caso.TipoInforme != "" && !catalogs.Contains(catalogs.TipoInformeList, cd.Caso.TipoInforme) {
		warnings = append(warnings, fmt.Sprintf("El tipo de informe %q no figura en el catálogo.", cd.Caso.TipoInforme))
	}

	for _, client := range cd.Clientes {
		errors = appendIf(errors, validators.ValidateClientID(client.TipoID, client.IDCliente))
		errors = appendIf(errors, validators.ValidateEmailList(client.Correos, "Correos del cliente "+client.IDCliente))
		errors = appendIf(errors, validators.ValidatePhoneList(client.Telefonos, "Teléfonos del cliente "+client.IDCliente))
	}
	for _, col := range cd.Colaboradores {
		errors = appendIf(errors, validators.ValidateTeamMemberID(col.IDColaborador))
		errors = appendIf(errors, validators.ValidateAgencyCode(col.CodigoAgencia, true))
	}
	for _, product := range cd.Productos {
		errors = appendIf(errors, validators.ValidateProductDates(product.IDProducto, product.FechaOcurrencia, product.FechaDescubrimiento))
		errors = appendIf(errors, validators.ValidateAmountText(product.MontoInvestigado, "El monto investigado del producto "+product.IDProducto, true))
		if product.TipoProducto != "" && !catalogs.Contains(catalogs.TipoProductoList, product.TipoProducto) {
			warnings = append(warnings, fmt.Sprintf("El tipo de producto %q no figura en el catálogo.", product.TipoProducto))
		}
	}
	for _, claim := range cd.Reclamos {
		errors = appendIf(errors, validators.ValidateReclamoID(claim.IDReclamo))
		if claim.CodigoAnalitica != "" {
			errors = appendIf(errors, validators.ValidateCodigoAnalitica(claim.CodigoAnalitica))
		}
	}
	for _, risk := range cd.Riesgos {
		errors = appendIf(errors, validators.ValidateRiskID(risk.IDRiesgo))
	}
	for _, norm := range cd.Normas {
		errors = appendIf(errors, validators.ValidateNormID(norm.IDNorma))
	}
	return errors, warnings
}

// FromConfig arma un Exporter con la configuración vigente.
func FromConfig(cfg config.Config) *Exporter {
	return &Exporter{
		ExportsDir:  cfg.ExportsFolderPath,
		ExternalDir: cfg.ExternalDrivePath,
		Placeholder: cfg.EventosPlaceholder,
		Encoding:    cfg.CSVEncoding,
		History: &history.Log{
			BaseDir:     cfg.ExportsFolderPath,
			Placeholder: cfg.EventosPlaceholder,
		},
	}
}

// SaveCaseHandler recibe el payload completo del formulario, lo valida y
// dispara el guardado de todos los artefactos más una versión en SQLite.
func SaveCaseHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSONError(w, "No se pudo leer la solicitud.", http.StatusBadRequest)
			return
		}
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			writeJSONError(w, "El payload del caso no es JSON válido.", http.StatusBadRequest)
			return
		}

		cd := casedata.FromPayload(payload)
		validationErrors, warnings := ValidateCase(cd)
		if len(validationErrors) > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]any{
				"message":  "Errores de validación",
				"errors":   validationErrors,
				"warnings": warnings,
			})
			return
		}

		exp := FromConfig(config.GetConfig())
		result, err := exp.PerformSaveExports(cd)
		if err != nil {
			log.Printf("Error saving case exports: %v", err)
			writeJSONError(w, "No se pudo completar el guardado: "+err.Error(), http.StatusInternalServerError)
			return
		}

		versionID := ""
		if db != nil {
			versionID, err = database.SaveCaseVersion(db, cd.Caso.IDCaso, string(body))
			if err != nil {
				log.Printf("WARN: could not save case version: %v", err)
			} else {
				cfg := config.GetConfig()
				if err := database.PruneCaseVersions(db, cfg.AutosaveMaxPerCase, cfg.AutosaveMaxAgeDays); err != nil {
					log.Printf("WARN: could not prune case versions: %v", err)
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message":    "Datos guardados",
			"files":      result.Files,
			"warnings":   warnings,
			"version_id": versionID,
		})
	}
}

// SaveTempVersionHandler guarda una instantánea sin exportar archivos.
func SaveTempVersionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSONError(w, "No se pudo leer la solicitud.", http.StatusBadRequest)
			return
		}
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			writeJSONError(w, "El payload del caso no es JSON válido.", http.StatusBadRequest)
			return
		}
		cd := casedata.FromPayload(payload)

		versionID, err := database.SaveCaseVersion(db, cd.Caso.IDCaso, string(body))
		if err != nil {
			log.Printf("Error saving temp version: %v", err)
			writeJSONError(w, "No se pudo guardar la versión temporal.", http.StatusInternalServerError)
			return
		}
		cfg := config.GetConfig()
		if err := database.PruneCaseVersions(db, cfg.AutosaveMaxPerCase, cfg.AutosaveMaxAgeDays); err != nil {
			log.Printf("WARN: could not prune case versions: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"version_id": versionID})
	}
}

// ListVersionsHandler lista las instantáneas de un caso.
func ListVersionsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID := strings.TrimSpace(r.URL.Query().Get("case_id"))
		if caseID == "" {
			writeJSONError(w, "Debe indicar case_id.", http.StatusBadRequest)
			return
		}
		versions, err := database.ListCaseVersions(db, caseID)
		if err != nil {
			log.Printf("Error listing versions for %s: %v", caseID, err)
			writeJSONError(w, "No se pudieron listar las versiones.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(versions)
	}
}

// LoadVersionHandler devuelve el payload completo de una instantánea.
func LoadVersionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/versions/load/")
		if id == "" {
			writeJSONError(w, "Debe indicar el id de la versión.", http.StatusBadRequest)
			return
		}
		version, err := database.GetCaseVersion(db, id)
		if err != nil {
			log.Printf("Error loading version %s: %v", id, err)
			writeJSONError(w, "No se encontró la versión solicitada.", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, version.Payload)
	}
}
