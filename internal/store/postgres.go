package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS aramex_shipments (
    id                   TEXT PRIMARY KEY,
    reference            TEXT NOT NULL UNIQUE,
    carrier_shipment_id  TEXT NOT NULL DEFAULT '',
    foreign_hawb         TEXT NOT NULL DEFAULT '',
    shipper_name         TEXT NOT NULL DEFAULT '',
    shipper_company      TEXT NOT NULL DEFAULT '',
    consignee_name       TEXT NOT NULL DEFAULT '',
    consignee_company    TEXT NOT NULL DEFAULT '',
    weight               DOUBLE PRECISION NOT NULL DEFAULT 0,
    dimensions           TEXT NOT NULL DEFAULT '',
    description          TEXT NOT NULL DEFAULT '',
    status               TEXT NOT NULL DEFAULT '',
    label_url            TEXT NOT NULL DEFAULT '',
    shipment_data        JSONB,
    tracking_data        JSONB,
    last_tracking_update TIMESTAMPTZ,
    created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS aramex_shipments_carrier_shipment_id_idx
    ON aramex_shipments (carrier_shipment_id);`

const columns = `id, reference, carrier_shipment_id, foreign_hawb, shipper_name, shipper_company,
        consignee_name, consignee_company, weight, dimensions, description, status, label_url,
        shipment_data, tracking_data, last_tracking_update, created_at, updated_at`

// PostgresStore persists shipment records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens and pings the database at connStr.
func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres db: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromDB wraps an existing connection pool.
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the shipments table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate shipments table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Upsert implements Store. Conflicting writes for the same reference are
// serialised by the unique constraint; the last one wins.
func (s *PostgresStore) Upsert(ctx context.Context, reference string, f Fields) (*Record, error) {
	query := `
        INSERT INTO aramex_shipments (id, reference, carrier_shipment_id, foreign_hawb, shipper_name,
            shipper_company, consignee_name, consignee_company, weight, dimensions, description,
            status, label_url, shipment_data, tracking_data, last_tracking_update)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        ON CONFLICT (reference) DO UPDATE SET
            carrier_shipment_id  = COALESCE(NULLIF(EXCLUDED.carrier_shipment_id, ''), aramex_shipments.carrier_shipment_id),
            foreign_hawb         = COALESCE(NULLIF(EXCLUDED.foreign_hawb, ''), aramex_shipments.foreign_hawb),
            shipper_name         = COALESCE(NULLIF(EXCLUDED.shipper_name, ''), aramex_shipments.shipper_name),
            shipper_company      = COALESCE(NULLIF(EXCLUDED.shipper_company, ''), aramex_shipments.shipper_company),
            consignee_name       = COALESCE(NULLIF(EXCLUDED.consignee_name, ''), aramex_shipments.consignee_name),
            consignee_company    = COALESCE(NULLIF(EXCLUDED.consignee_company, ''), aramex_shipments.consignee_company),
            weight               = CASE WHEN EXCLUDED.weight > 0 THEN EXCLUDED.weight ELSE aramex_shipments.weight END,
            dimensions           = COALESCE(NULLIF(EXCLUDED.dimensions, ''), aramex_shipments.dimensions),
            description          = COALESCE(NULLIF(EXCLUDED.description, ''), aramex_shipments.description),
            status               = COALESCE(NULLIF(EXCLUDED.status, ''), aramex_shipments.status),
            label_url            = COALESCE(NULLIF(EXCLUDED.label_url, ''), aramex_shipments.label_url),
            shipment_data        = COALESCE(EXCLUDED.shipment_data, aramex_shipments.shipment_data),
            tracking_data        = COALESCE(EXCLUDED.tracking_data, aramex_shipments.tracking_data),
            last_tracking_update = COALESCE(EXCLUDED.last_tracking_update, aramex_shipments.last_tracking_update),
            updated_at           = now()
        RETURNING ` + columns

	row := s.db.QueryRowContext(ctx, query,
		uuid.New().String(),
		reference,
		f.CarrierShipmentID,
		f.ForeignWaybill,
		f.ShipperName,
		f.ShipperCompany,
		f.ConsigneeName,
		f.ConsigneeCompany,
		f.Weight,
		f.Dimensions,
		f.Description,
		f.Status,
		f.LabelURL,
		nullJSON(f.ShipmentData),
		nullJSON(f.TrackingData),
		f.LastTrackingUpdate,
	)

	rec, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert shipment %s: %w", reference, err)
	}
	return rec, nil
}

// FindByCarrierShipmentID implements Store.
func (s *PostgresStore) FindByCarrierShipmentID(ctx context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	query := `
        SELECT ` + columns + `
        FROM aramex_shipments
        WHERE carrier_shipment_id = $1
        ORDER BY created_at DESC
        LIMIT 1`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find shipment %s: %w", id, err)
	}
	return rec, nil
}

// List implements Store.
func (s *PostgresStore) List(ctx context.Context, limit int) ([]Record, error) {
	query := `
        SELECT ` + columns + `
        FROM aramex_shipments
        ORDER BY created_at DESC
        LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shipment: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var (
		rec                        Record
		shipmentData, trackingData []byte
		lastTracking               sql.NullTime
	)
	if err := row.Scan(
		&rec.ID,
		&rec.Reference,
		&rec.CarrierShipmentID,
		&rec.ForeignWaybill,
		&rec.ShipperName,
		&rec.ShipperCompany,
		&rec.ConsigneeName,
		&rec.ConsigneeCompany,
		&rec.Weight,
		&rec.Dimensions,
		&rec.Description,
		&rec.Status,
		&rec.LabelURL,
		&shipmentData,
		&trackingData,
		&lastTracking,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(shipmentData) > 0 {
		rec.ShipmentData = json.RawMessage(shipmentData)
	}
	if len(trackingData) > 0 {
		rec.TrackingData = json.RawMessage(trackingData)
	}
	if lastTracking.Valid {
		t := lastTracking.Time
		rec.LastTrackingUpdate = &t
	}
	return &rec, nil
}

// nullJSON sends JSON documents as text so they are accepted by JSONB columns.
func nullJSON(data json.RawMessage) any {
	if len(data) == 0 {
		return nil
	}
	return string(data)
}

var _ Store = (*PostgresStore)(nil)
