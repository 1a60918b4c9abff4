package store_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/aramexbridge/internal/store"
)

var recordColumns = []string{
	"id", "reference", "carrier_shipment_id", "foreign_hawb", "shipper_name", "shipper_company",
	"consignee_name", "consignee_company", "weight", "dimensions", "description", "status", "label_url",
	"shipment_data", "tracking_data", "last_tracking_update", "created_at", "updated_at",
}

func newMockStore(t *testing.T) (*store.PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store.NewPostgresStoreFromDB(db), mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS aramex_shipments")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Upsert(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO aramex_shipments")).
		WithArgs(
			sqlmock.AnyArg(), "SHIP_1", "44000000001", "FH1", "John Doe", "", "Jane Smith", "",
			1.5, "20x15x10 CM", "Electronics", "Created", "https://label", `{"a":1}`, nil, nil,
		).
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow(
			"id-1", "SHIP_1", "44000000001", "FH1", "John Doe", "", "Jane Smith", "",
			1.5, "20x15x10 CM", "Electronics", "Created", "https://label",
			[]byte(`{"a":1}`), nil, nil, now, now,
		))

	rec, err := s.Upsert(context.Background(), "SHIP_1", store.Fields{
		CarrierShipmentID: "44000000001",
		ForeignWaybill:    "FH1",
		ShipperName:       "John Doe",
		ConsigneeName:     "Jane Smith",
		Weight:            1.5,
		Dimensions:        "20x15x10 CM",
		Description:       "Electronics",
		Status:            "Created",
		LabelURL:          "https://label",
		ShipmentData:      json.RawMessage(`{"a":1}`),
	})

	require.NoError(t, err)
	assert.Equal(t, "id-1", rec.ID)
	assert.Equal(t, "44000000001", rec.CarrierShipmentID)
	assert.JSONEq(t, `{"a":1}`, string(rec.ShipmentData))
	assert.Nil(t, rec.TrackingData)
	assert.Nil(t, rec.LastTrackingUpdate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO aramex_shipments")).
		WillReturnError(errors.New("connection reset"))

	_, err := s.Upsert(context.Background(), "SHIP_1", store.Fields{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHIP_1")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPostgresStore_FindByCarrierShipmentID(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE carrier_shipment_id = $1")).
		WithArgs("44000000001").
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow(
			"id-1", "SHIP_1", "44000000001", "", "", "", "", "",
			0.0, "", "", "SH005", "", nil, []byte(`[{"status":"SH005"}]`), now, now, now,
		))

	rec, err := s.FindByCarrierShipmentID(context.Background(), "44000000001")

	require.NoError(t, err)
	assert.Equal(t, "SH005", rec.Status)
	require.NotNil(t, rec.LastTrackingUpdate)
	assert.True(t, now.Equal(*rec.LastTrackingUpdate))
	assert.JSONEq(t, `[{"status":"SH005"}]`, string(rec.TrackingData))
}

func TestPostgresStore_FindNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE carrier_shipment_id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := s.FindByCarrierShipmentID(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.FindByCarrierShipmentID(context.Background(), "")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPostgresStore_List(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("id-2", "SHIP_2", "2", "", "", "", "", "", 0.0, "", "", "Created", "", nil, nil, nil, now, now).
			AddRow("id-1", "SHIP_1", "1", "", "", "", "", "", 0.0, "", "", "Created", "", nil, nil, nil, now, now))

	records, err := s.List(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "SHIP_2", records[0].Reference)
	assert.NoError(t, mock.ExpectationsWereMet())
}
