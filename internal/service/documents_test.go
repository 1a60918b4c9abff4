package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/aramexbridge/internal/service"
	"github.com/tournevent/aramexbridge/internal/store"
	"github.com/tournevent/aramexbridge/pkg/shipper"
	"github.com/tournevent/aramexbridge/pkg/shipper/mock"
)

const shipmentDocument = `{
  "origin": {"city": "Dubai", "country_code": "AE"},
  "destination": {"city": "Riyadh", "country_code": "SA"},
  "shipper": {"name": "John Doe", "line1": "123 Test Street", "city": "Dubai", "country_code": "AE",
              "phone": "+971501234567", "email": "john@example.com"},
  "consignee": {"name": "Jane Smith", "line1": "456 King Road", "city": "Riyadh", "country_code": "SA",
                "phone": "+966501234567", "email": "jane@example.com"},
  "package": {"length": 20, "width": "15", "height": 10, "weight": 1.5, "number_of_pieces": 1,
              "description": "Electronics"}
}`

func TestDecodeDocument(t *testing.T) {
	var doc service.ShipmentIDDocument
	require.NoError(t, service.DecodeDocument([]byte(`{"shipment_id":"44000000001"}`), &doc))
	assert.Equal(t, "44000000001", doc.ShipmentID)
}

func TestDecodeDocument_DoubleEncoded(t *testing.T) {
	encoded, err := json.Marshal(`{"shipment_id":"44000000001"}`)
	require.NoError(t, err)

	var doc service.ShipmentIDDocument
	require.NoError(t, service.DecodeDocument(encoded, &doc))
	assert.Equal(t, "44000000001", doc.ShipmentID)
}

func TestDecodeDocument_Malformed(t *testing.T) {
	inputs := map[string]string{
		"empty":             ``,
		"truncated":         `{"shipment_id":`,
		"not json":          `shipment please`,
		"bad inner string":  `"{\"shipment_id\":"`,
		"unterminated text": `"abc`,
		"wrong type":        `{"shipment_id": 12}`,
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			var doc service.ShipmentIDDocument
			err := service.DecodeDocument([]byte(input), &doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, shipper.ErrInvalidInput)
			assert.Equal(t, "Invalid JSON data provided", shipper.Message(err))
		})
	}
}

func TestService_QuoteJSON(t *testing.T) {
	svc := newService(mock.New("aramex"), nil)

	res := svc.QuoteJSON(context.Background(), []byte(shipmentDocument))

	require.True(t, res.Success, res.Message)
	require.Len(t, res.Data, 1)
}

func TestService_CreateJSON_DoubleEncoded(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newService(mock.New("aramex"), st)

	encoded, err := json.Marshal(shipmentDocument)
	require.NoError(t, err)
	res := svc.CreateJSON(context.Background(), encoded)

	require.True(t, res.Success, res.Message)
	rec, err := st.FindByCarrierShipmentID(context.Background(), res.Data.ShipmentID)
	require.NoError(t, err)
	assert.Equal(t, "20x15x10 CM", rec.Dimensions)
}

func TestService_LabelJSON(t *testing.T) {
	svc := newService(mock.New("aramex"), nil)

	res := svc.LabelJSON(context.Background(), []byte(`{"shipment_id":"44000000001"}`))

	require.True(t, res.Success)
	assert.Equal(t, "44000000001", res.Data.ShipmentID)
}

func TestService_TrackJSON_MissingID(t *testing.T) {
	carrier := mock.New("aramex")
	svc := newService(carrier, nil)

	res := svc.TrackJSON(context.Background(), []byte(`{}`))

	assert.False(t, res.Success)
	assert.Equal(t, "Shipment ID is required", res.Message)
	assert.Equal(t, 0, carrier.Calls())
}

func TestService_JSONEntryPoints_Malformed(t *testing.T) {
	carrier := mock.New("aramex")
	svc := newService(carrier, nil)
	ctx := context.Background()
	raw := []byte(`{"origin": {`)

	quote := svc.QuoteJSON(ctx, raw)
	create := svc.CreateJSON(ctx, raw)
	label := svc.LabelJSON(ctx, raw)
	track := svc.TrackJSON(ctx, raw)

	for _, res := range []struct {
		success bool
		message string
		err     error
	}{
		{quote.Success, quote.Message, quote.Err},
		{create.Success, create.Message, create.Err},
		{label.Success, label.Message, label.Err},
		{track.Success, track.Message, track.Err},
	} {
		assert.False(t, res.success)
		assert.Equal(t, "Invalid JSON data provided", res.message)
		assert.ErrorIs(t, res.err, shipper.ErrInvalidInput)
	}
	assert.NotNil(t, quote.Data)
	assert.NotNil(t, track.Data)
	assert.Equal(t, 0, carrier.Calls())
}
