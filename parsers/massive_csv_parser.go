package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"fic/catalogs"
	"fic/model"
)

// ReadMassiveRows lee un CSV masivo como filas nombre-de-columna -> valor,
// recortando espacios y descartando filas completamente vacías.
func ReadMassiveRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(SkipBOM(r))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("el archivo CSV está vacío")
	}
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer el encabezado del CSV: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: error leyendo la fila %d del CSV masivo (se omite): %v", line, err)
			continue
		}
		row := map[string]string{}
		empty := true
		for i, name := range header {
			if name == "" || i >= len(record) {
				continue
			}
			value := strings.TrimSpace(record[i])
			row[name] = value
			if value != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// rowID devuelve el valor de la primera columna de ID presente entre los alias.
func rowID(row map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if value, ok := row[alias]; ok && value != "" {
			return value
		}
	}
	return ""
}

// ParseClientDetailsCSV importa el catálogo de clientes masivos. Las filas
// sin ID se omiten con un WARN.
func ParseClientDetailsCSV(r io.Reader) ([]model.ClientDetail, error) {
	rows, err := ReadMassiveRows(r)
	if err != nil {
		return nil, err
	}
	var details []model.ClientDetail
	for i, row := range rows {
		id := rowID(row, catalogs.ClientIDAliases)
		if id == "" {
			id = row["id_cliente"]
		}
		if id == "" {
			log.Printf("WARN: fila %d del CSV de clientes sin ID (se omite)", i+2)
			continue
		}
		details = append(details, model.ClientDetail{
			IDCliente:   id,
			TipoID:      row["tipo_id"],
			Nombres:     row["nombres"],
			Apellidos:   row["apellidos"],
			Telefonos:   row["telefonos"],
			Correos:     row["correos"],
			Direcciones: row["direcciones"],
		})
	}
	return details, nil
}

func ParseTeamDetailsCSV(r io.Reader) ([]model.TeamDetail, error) {
	rows, err := ReadMassiveRows(r)
	if err != nil {
		return nil, err
	}
	var details []model.TeamDetail
	for i, row := range rows {
		id := rowID(row, catalogs.TeamIDAliases)
		if id == "" {
			id = row["id_colaborador"]
		}
		if id == "" {
			log.Printf("WARN: fila %d del CSV de colaboradores sin ID (se omite)", i+2)
			continue
		}
		details = append(details, model.TeamDetail{
			IDColaborador: id,
			Nombres:       row["nombres"],
			Apellidos:     row["apellidos"],
			Division:      row["division"],
			Area:          row["area"],
			Servicio:      row["servicio"],
			Puesto:        row["puesto"],
			NombreAgencia: row["nombre_agencia"],
			CodigoAgencia: row["codigo_agencia"],
		})
	}
	return details, nil
}

func ParseProductDetailsCSV(r io.Reader) ([]model.ProductDetail, error) {
	rows, err := ReadMassiveRows(r)
	if err != nil {
		return nil, err
	}
	var details []model.ProductDetail
	for i, row := range rows {
		id := rowID(row, catalogs.ProductIDAliases)
		if id == "" {
			id = row["id_producto"]
		}
		if id == "" {
			log.Printf("WARN: fila %d del CSV de productos sin ID (se omite)", i+2)
			continue
		}
		details = append(details, model.ProductDetail{
			IDProducto:   id,
			IDCliente:    row["id_cliente"],
			TipoProducto: row["tipo_producto"],
			Canal:        row["canal"],
			Proceso:      row["proceso"],
		})
	}
	return details, nil
}

func ParseRiskDetailsCSV(r io.Reader) ([]model.RiskDetail, error) {
	rows, err := ReadMassiveRows(r)
	if err != nil {
		return nil, err
	}
	var details []model.RiskDetail
	for i, row := range rows {
		id := rowID(row, catalogs.RiskIDAliases)
		if id == "" {
			id = row["id_riesgo"]
		}
		if id == "" {
			log.Printf("WARN: fila %d del CSV de riesgos sin ID (se omite)", i+2)
			continue
		}
		details = append(details, model.RiskDetail{
			IDRiesgo:           id,
			Lider:              row["lider"],
			Criticidad:         row["criticidad"],
			ExposicionResidual: row["exposicion_residual"],
			PlanesAccion:       row["planes_accion"],
		})
	}
	return details, nil
}

func ParseNormDetailsCSV(r io.Reader) ([]model.NormDetail, error) {
	rows, err := ReadMassiveRows(r)
	if err != nil {
		return nil, err
	}
	var details []model.NormDetail
	for i, row := range rows {
		id := rowID(row, catalogs.NormIDAliases)
		if id == "" {
			id = row["id_norma"]
		}
		if id == "" {
			log.Printf("WARN: fila %d del CSV de normas sin ID (se omite)", i+2)
			continue
		}
		details = append(details, model.NormDetail{
			IDNorma:       id,
			Descripcion:   row["descripcion"],
			FechaVigencia: row["fecha_vigencia"],
		})
	}
	return details, nil
}

func ParseClaimDetailsCSV(r io.Reader) ([]model.ClaimDetail, error) {
	rows, err := ReadMassiveRows(r)
	if err != nil {
		return nil, err
	}
	var details []model.ClaimDetail
	for i, row := range rows {
		id := rowID(row, catalogs.ClaimIDAliases)
		if id == "" {
			id = row["id_reclamo"]
		}
		if id == "" {
			log.Printf("WARN: fila %d del CSV de reclamos sin ID (se omite)", i+2)
			continue
		}
		details = append(details, model.ClaimDetail{
			IDReclamo:       id,
			IDProducto:      row["id_producto"],
			NombreAnalitica: row["nombre_analitica"],
			CodigoAnalitica: row["codigo_analitica"],
		})
	}
	return details, nil
}
