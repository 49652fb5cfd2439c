package parsers

import (
	"encoding/json"
	"log"
	"net/http"
)

// ImportCombinedHandler recibe el CSV combinado (una fila = cliente +
// colaborador + producto + involucramientos) y devuelve las filas parseadas
// para que el formulario las incorpore.
func ImportCombinedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "Debe adjuntar el archivo CSV en el campo 'file'.", http.StatusBadRequest)
			return
		}
		defer file.Close()

		rows, err := ParseCombinedCSV(file)
		if err != nil {
			log.Printf("Error parsing combined CSV: %v", err)
			http.Error(w, "No se pudo leer el CSV combinado: "+err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message": "CSV combinado importado",
			"count":   len(rows),
			"rows":    rows,
		})
	}
}
