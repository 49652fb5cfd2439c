package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"fic/config"
)

// Helper: responde el error en JSON.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// GetConfigHandler devuelve la configuración vigente.
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg)
	}
}

// SaveConfigHandler valida y persiste la configuración.
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			writeJSONError(w, "La solicitud no es válida.", http.StatusBadRequest)
			return
		}

		// Carpeta de exportación: se crea al guardar, pero si la ruta ya
		// existe debe ser una carpeta.
		if err := validateFolderPath(newCfg.ExportsFolderPath); err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		// Disco externo: puede estar desconectado, solo se rechaza si la
		// ruta apunta a un archivo.
		if err := validateFolderPath(newCfg.ExternalDrivePath); err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		if newCfg.CartaTemplatePath != "" {
			if _, err := os.Stat(newCfg.CartaTemplatePath); err != nil {
				writeJSONError(w, "No se encontró la plantilla de carta: "+newCfg.CartaTemplatePath, http.StatusBadRequest)
				return
			}
		}

		if err := config.SaveConfig(newCfg); err != nil {
			log.Printf("Error saving config: %v", err)
			writeJSONError(w, "No se pudo guardar la configuración.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Configuración guardada."})
	}
}

// validateFolderPath acepta rutas vacías o inexistentes (se crean o se
// degradan a WARN al usarlas); rechaza las que existen y no son carpetas.
func validateFolderPath(path string) error {
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		log.Printf("Error checking folder path: %v", err)
		return errors.New("No se pudo verificar la ruta indicada: " + path)
	}
	if !info.IsDir() {
		return errors.New("La ruta indicada no es una carpeta: " + path)
	}
	return nil
}
