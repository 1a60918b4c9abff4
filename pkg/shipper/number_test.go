package shipper_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/aramexbridge/pkg/shipper"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	var pkg shipper.Package
	err := json.Unmarshal([]byte(`{"length": 20, "width": "15", "height": null, "weight": " 1.5 ", "number_of_pieces": "abc"}`), &pkg)
	require.NoError(t, err)

	assert.Equal(t, shipper.Number("20"), pkg.Length)
	assert.Equal(t, shipper.Number("15"), pkg.Width)
	assert.Equal(t, shipper.Number(""), pkg.Height)
	assert.Equal(t, shipper.Number("1.5"), pkg.Weight)
	assert.Equal(t, shipper.Number("abc"), pkg.Pieces)
}

func TestNumber_Float(t *testing.T) {
	f, err := shipper.Number("25.5").Float()
	require.NoError(t, err)
	assert.Equal(t, 25.5, f)

	f, err = shipper.Number("").Float()
	require.NoError(t, err)
	assert.Zero(t, f)

	_, err = shipper.Number("heavy").Float()
	assert.Error(t, err)
}

func TestNumber_FloatRejectsNonFinite(t *testing.T) {
	for _, raw := range []string{"NaN", "nan", "Inf", "+Inf", "-Infinity"} {
		_, err := shipper.Number(raw).Float()
		assert.Error(t, err, raw)
		assert.False(t, shipper.Number(raw).IsZero(), raw)
	}
}

func TestNumber_Int(t *testing.T) {
	n, err := shipper.Number("3").Int()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = shipper.Number("three").Int()
	assert.Error(t, err)
}

func TestNumber_IntIsBase10(t *testing.T) {
	n, err := shipper.Number("010").Int()
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	n, err = shipper.Number(" 3 ").Int()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = shipper.Number("0x10").Int()
	assert.Error(t, err)
}

func TestNumber_IsZero(t *testing.T) {
	assert.True(t, shipper.Number("").IsZero())
	assert.True(t, shipper.Number("0").IsZero())
	assert.False(t, shipper.Number("0.1").IsZero())
	assert.False(t, shipper.Number("abc").IsZero())
}

func TestNumber_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A shipper.Number `json:"a"`
		B shipper.Number `json:"b"`
		C shipper.Number `json:"c"`
	}{A: "1.5", B: "abc", C: ""})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1.5, "b": "abc", "c": null}`, string(data))
}

func TestNumber_MarshalJSONCanonicalizes(t *testing.T) {
	tests := map[shipper.Number]string{
		".5":   "0.5",
		"+5":   "5",
		"5.":   "5",
		"1e3":  "1000",
		"010":  "10",
		"NaN":  `"NaN"`,
		"-Inf": `"-Inf"`,
	}
	for in, want := range tests {
		data, err := json.Marshal(in)
		require.NoError(t, err, in)
		assert.True(t, json.Valid(data), in)
		assert.Equal(t, want, string(data), in)
	}

	data, err := json.Marshal(shipper.Package{Weight: ".5", Length: "+20"})
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestNumberOf(t *testing.T) {
	assert.Equal(t, shipper.Number("2.5"), shipper.NumberOf(2.5))
}
