package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"fic/cartas"
	"fic/catalogs"
	"fic/database"
	"fic/exporter"
	"fic/loader"
	"fic/parsers"
	"fic/report"

	"github.com/jmoiron/sqlx"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB) {

	mux.HandleFunc("/api/case/save", exporter.SaveCaseHandler(dbConn))

	mux.HandleFunc("/api/versions/save", exporter.SaveTempVersionHandler(dbConn))
	mux.HandleFunc("/api/versions", exporter.ListVersionsHandler(dbConn))
	mux.HandleFunc("/api/versions/load/", exporter.LoadVersionHandler(dbConn))

	mux.HandleFunc("/api/cartas/generate", cartas.GenerateHandler())

	mux.HandleFunc("/api/report/markdown", report.MarkdownHandler())
	mux.HandleFunc("/api/report/pdf", report.PDFHandler(dbConn))
	mux.HandleFunc("/report/preview/", report.PreviewPageHandler(dbConn))

	mux.HandleFunc("/api/details/clientes/", detailLookupHandler("/api/details/clientes/", func(id string) (any, error) {
		detail, err := database.GetClientDetail(dbConn, id)
		if detail == nil {
			return nil, err
		}
		return detail, err
	}))
	mux.HandleFunc("/api/details/colaboradores/", detailLookupHandler("/api/details/colaboradores/", func(id string) (any, error) {
		detail, err := database.GetTeamDetail(dbConn, id)
		if detail == nil {
			return nil, err
		}
		return detail, err
	}))
	mux.HandleFunc("/api/details/productos/", detailLookupHandler("/api/details/productos/", func(id string) (any, error) {
		detail, err := database.GetProductDetail(dbConn, id)
		if detail == nil {
			return nil, err
		}
		return detail, err
	}))
	mux.HandleFunc("/api/details/riesgos/", detailLookupHandler("/api/details/riesgos/", func(id string) (any, error) {
		detail, err := database.GetRiskDetail(dbConn, id)
		if detail == nil {
			return nil, err
		}
		return detail, err
	}))
	mux.HandleFunc("/api/details/normas/", detailLookupHandler("/api/details/normas/", func(id string) (any, error) {
		detail, err := database.GetNormDetail(dbConn, id)
		if detail == nil {
			return nil, err
		}
		return detail, err
	}))
	mux.HandleFunc("/api/details/reclamos/", detailLookupHandler("/api/details/reclamos/", func(id string) (any, error) {
		detail, err := database.GetClaimDetail(dbConn, id)
		if detail == nil {
			return nil, err
		}
		return detail, err
	}))

	mux.HandleFunc("/api/catalogs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"taxonomia":         catalogs.Taxonomia,
			"canales":           catalogs.CanalList,
			"procesos":          catalogs.ProcesoList,
			"tipos_producto":    catalogs.TipoProductoList,
			"tipos_informe":     catalogs.TipoInformeList,
			"tipos_id":          catalogs.TipoIDList,
			"flags_cliente":     catalogs.FlagClienteList,
			"flags_colaborador": catalogs.FlagColaboradorList,
			"tipos_falta":       catalogs.TipoFaltaList,
			"tipos_sancion":     catalogs.TipoSancionList,
			"tipos_moneda":      catalogs.TipoMonedaList,
			"criticidades":      catalogs.CriticidadList,
			"accionado":         catalogs.AccionadoOptions,
		})
	})

	mux.HandleFunc("/api/catalogs/modalidades", func(w http.ResponseWriter, r *http.Request) {
		categoria1 := r.URL.Query().Get("categoria1")
		categoria2 := r.URL.Query().Get("categoria2")
		w.Header().Set("Content-Type", "application/json")
		if categoria2 == "" {
			json.NewEncoder(w).Encode(catalogs.Categorias2(categoria1))
			return
		}
		json.NewEncoder(w).Encode(catalogs.Modalidades(categoria1, categoria2))
	})

	mux.HandleFunc("/api/catalogs/reload", loader.ReloadCatalogsHandler(dbConn))

	mux.HandleFunc("/api/import/combined", parsers.ImportCombinedHandler())

	mux.HandleFunc("/api/sequences/next/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/api/sequences/next/")
		var prefix string
		var padding int
		switch name {
		case "RSK":
			prefix, padding = "RSK-", 6
		case "NRM":
			prefix, padding = "NRM-", 5
		default:
			writeJSONError(w, "Secuencia desconocida: "+name, http.StatusBadRequest)
			return
		}

		tx, err := dbConn.Beginx()
		if err != nil {
			log.Printf("Error beginning transaction for sequence %s: %v", name, err)
			writeJSONError(w, "No se pudo generar el siguiente ID.", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		id, err := database.NextSequenceInTx(tx, name, prefix, padding)
		if err != nil {
			log.Printf("Error generating next %s id: %v", name, err)
			writeJSONError(w, "No se pudo generar el siguiente ID.", http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(); err != nil {
			log.Printf("Error committing sequence %s: %v", name, err)
			writeJSONError(w, "No se pudo generar el siguiente ID.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": id})
	})

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler()(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
}

// detailLookupHandler resuelve un detalle de catálogo por ID. fetch devuelve
// (nil, nil) cuando el ID no existe.
func detailLookupHandler(prefix string, fetch func(id string) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, prefix)
		if id == "" {
			http.Error(w, "Debe indicar el ID a consultar.", http.StatusBadRequest)
			return
		}
		detail, err := fetch(id)
		if err != nil {
			log.Printf("Error querying detail %s%s: %v", prefix, id, err)
			http.Error(w, "No se pudo consultar el catálogo.", http.StatusInternalServerError)
			return
		}
		if detail == nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(detail); err != nil {
			log.Printf("Error encoding detail response for %s%s: %v", prefix, id, err)
		}
	}
}
