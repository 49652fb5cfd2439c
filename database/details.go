package database

import (
	"database/sql"
	"fmt"

	"fic/model"

	"github.com/jmoiron/sqlx"
)

// Catálogos de detalle. Cada Upsert reemplaza el registro completo porque las
// importaciones masivas son la fuente de verdad.

func UpsertClientDetailInTx(tx *sqlx.Tx, detail model.ClientDetail) error {
	const q = `
		INSERT INTO client_details (id_cliente, tipo_id, nombres, apellidos, telefonos, correos, direcciones)
		VALUES (:id_cliente, :tipo_id, :nombres, :apellidos, :telefonos, :correos, :direcciones)
		ON CONFLICT(id_cliente) DO UPDATE SET
			tipo_id = excluded.tipo_id,
			nombres = excluded.nombres,
			apellidos = excluded.apellidos,
			telefonos = excluded.telefonos,
			correos = excluded.correos,
			direcciones = excluded.direcciones
	`
	if _, err := tx.NamedExec(q, detail); err != nil {
		return fmt.Errorf("UpsertClientDetailInTx (ID: %s) failed: %w", detail.IDCliente, err)
	}
	return nil
}

func UpsertTeamDetailInTx(tx *sqlx.Tx, detail model.TeamDetail) error {
	const q = `
		INSERT INTO team_details (id_colaborador, nombres, apellidos, division, area, servicio, puesto, nombre_agencia, codigo_agencia)
		VALUES (:id_colaborador, :nombres, :apellidos, :division, :area, :servicio, :puesto, :nombre_agencia, :codigo_agencia)
		ON CONFLICT(id_colaborador) DO UPDATE SET
			nombres = excluded.nombres,
			apellidos = excluded.apellidos,
			division = excluded.division,
			area = excluded.area,
			servicio = excluded.servicio,
			puesto = excluded.puesto,
			nombre_agencia = excluded.nombre_agencia,
			codigo_agencia = excluded.codigo_agencia
	`
	if _, err := tx.NamedExec(q, detail); err != nil {
		return fmt.Errorf("UpsertTeamDetailInTx (ID: %s) failed: %w", detail.IDColaborador, err)
	}
	return nil
}

func UpsertProductDetailInTx(tx *sqlx.Tx, detail model.ProductDetail) error {
	const q = `
		INSERT INTO product_details (id_producto, id_cliente, tipo_producto, canal, proceso)
		VALUES (:id_producto, :id_cliente, :tipo_producto, :canal, :proceso)
		ON CONFLICT(id_producto) DO UPDATE SET
			id_cliente = excluded.id_cliente,
			tipo_producto = excluded.tipo_producto,
			canal = excluded.canal,
			proceso = excluded.proceso
	`
	if _, err := tx.NamedExec(q, detail); err != nil {
		return fmt.Errorf("UpsertProductDetailInTx (ID: %s) failed: %w", detail.IDProducto, err)
	}
	return nil
}

func UpsertRiskDetailInTx(tx *sqlx.Tx, detail model.RiskDetail) error {
	const q = `
		INSERT INTO risk_details (id_riesgo, lider, criticidad, exposicion_residual, planes_accion)
		VALUES (:id_riesgo, :lider, :criticidad, :exposicion_residual, :planes_accion)
		ON CONFLICT(id_riesgo) DO UPDATE SET
			lider = excluded.lider,
			criticidad = excluded.criticidad,
			exposicion_residual = excluded.exposicion_residual,
			planes_accion = excluded.planes_accion
	`
	if _, err := tx.NamedExec(q, detail); err != nil {
		return fmt.Errorf("UpsertRiskDetailInTx (ID: %s) failed: %w", detail.IDRiesgo, err)
	}
	return nil
}

func UpsertNormDetailInTx(tx *sqlx.Tx, detail model.NormDetail) error {
	const q = `
		INSERT INTO norm_details (id_norma, descripcion, fecha_vigencia)
		VALUES (:id_norma, :descripcion, :fecha_vigencia)
		ON CONFLICT(id_norma) DO UPDATE SET
			descripcion = excluded.descripcion,
			fecha_vigencia = excluded.fecha_vigencia
	`
	if _, err := tx.NamedExec(q, detail); err != nil {
		return fmt.Errorf("UpsertNormDetailInTx (ID: %s) failed: %w", detail.IDNorma, err)
	}
	return nil
}

func UpsertClaimDetailInTx(tx *sqlx.Tx, detail model.ClaimDetail) error {
	const q = `
		INSERT INTO claim_details (id_reclamo, id_producto, nombre_analitica, codigo_analitica)
		VALUES (:id_reclamo, :id_producto, :nombre_analitica, :codigo_analitica)
		ON CONFLICT(id_reclamo) DO UPDATE SET
			id_producto = excluded.id_producto,
			nombre_analitica = excluded.nombre_analitica,
			codigo_analitica = excluded.codigo_analitica
	`
	if _, err := tx.NamedExec(q, detail); err != nil {
		return fmt.Errorf("UpsertClaimDetailInTx (ID: %s) failed: %w", detail.IDReclamo, err)
	}
	return nil
}

// GetClientDetail devuelve nil sin error cuando el ID no existe; el handler
// responde 404 en ese caso.
func GetClientDetail(db *sqlx.DB, id string) (*model.ClientDetail, error) {
	var detail model.ClientDetail
	err := db.Get(&detail, `SELECT * FROM client_details WHERE id_cliente = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get client detail '%s': %w", id, err)
	}
	return &detail, nil
}

func GetTeamDetail(db *sqlx.DB, id string) (*model.TeamDetail, error) {
	var detail model.TeamDetail
	err := db.Get(&detail, `SELECT * FROM team_details WHERE id_colaborador = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get team detail '%s': %w", id, err)
	}
	return &detail, nil
}

func GetProductDetail(db *sqlx.DB, id string) (*model.ProductDetail, error) {
	var detail model.ProductDetail
	err := db.Get(&detail, `SELECT * FROM product_details WHERE id_producto = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product detail '%s': %w", id, err)
	}
	return &detail, nil
}

func GetRiskDetail(db *sqlx.DB, id string) (*model.RiskDetail, error) {
	var detail model.RiskDetail
	err := db.Get(&detail, `SELECT * FROM risk_details WHERE id_riesgo = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get risk detail '%s': %w", id, err)
	}
	return &detail, nil
}

func GetNormDetail(db *sqlx.DB, id string) (*model.NormDetail, error) {
	var detail model.NormDetail
	err := db.Get(&detail, `SELECT * FROM norm_details WHERE id_norma = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get norm detail '%s': %w", id, err)
	}
	return &detail, nil
}

func GetClaimDetail(db *sqlx.DB, id string) (*model.ClaimDetail, error) {
	var detail model.ClaimDetail
	err := db.Get(&detail, `SELECT * FROM claim_details WHERE id_reclamo = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get claim detail '%s': %w", id, err)
	}
	return &detail, nil
}

// CountDetails devuelve los totales por catálogo para el resumen de carga.
func CountDetails(db *sqlx.DB) (map[string]int, error) {
	counts := map[string]int{}
	tables := map[string]string{
		"clientes":      "client_details",
		"colaboradores": "team_details",
		"productos":     "product_details",
		"riesgos":       "risk_details",
		"normas":        "norm_details",
		"reclamos":      "claim_details",
	}
	for label, table := range tables {
		var total int
		if err := db.Get(&total, "SELECT COUNT(*) FROM "+table); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[label] = total
	}
	return counts, nil
}
