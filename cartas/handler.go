package cartas

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"fic/casedata"
	"fic/config"
	"fic/model"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// FromConfig arma un Generator con la configuración vigente.
func FromConfig(cfg config.Config) *Generator {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "desconocido"
	}
	externalDir := cfg.CartaExternalMirror
	if externalDir == "" {
		externalDir = cfg.ExternalDrivePath
	}
	return &Generator{
		ExportsDir:  cfg.ExportsFolderPath,
		ExternalDir: externalDir,
		Hostname:    hostname,
	}
}

// GenerateHandler recibe el payload del caso más la selección opcional de
// matrículas y genera las cartas de inmediatez correspondientes.
func GenerateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var request struct {
			Payload    map[string]any `json:"payload"`
			Matriculas []string       `json:"matriculas"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeJSONError(w, "El payload de la solicitud no es JSON válido.", http.StatusBadRequest)
			return
		}

		cd := casedata.FromPayload(request.Payload)
		members := selectMembers(cd.Colaboradores, request.Matriculas)

		gen := FromConfig(config.GetConfig())
		result, err := gen.GenerateCartas(cd, members)
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, ErrCasoObligatorio),
				errors.Is(err, ErrSinColaboradores),
				errors.Is(err, ErrMatriculaFaltante):
				status = http.StatusBadRequest
			case errors.Is(err, ErrCartaDuplicada):
				status = http.StatusConflict
			case errors.Is(err, ErrGeneracionEnCurso):
				status = http.StatusLocked
			}
			log.Printf("Error generating cartas: %v", err)
			writeJSONError(w, err.Error(), status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Cartas generadas",
			"files":   result.Files,
			"rows":    result.Rows,
		})
	}
}

// selectMembers filtra por matrícula; una lista vacía selecciona a todos.
func selectMembers(all []model.Colaborador, matriculas []string) []model.Colaborador {
	if len(matriculas) == 0 {
		return all
	}
	wanted := make(map[string]bool, len(matriculas))
	for _, m := range matriculas {
		wanted[m] = true
	}
	var selected []model.Colaborador
	for _, member := range all {
		if wanted[member.IDColaborador] {
			selected = append(selected, member)
		}
	}
	return selected
}
