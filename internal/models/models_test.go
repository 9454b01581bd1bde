package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFarmerProfileDecode(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		for _, doc := range []string{"", "null"} {
			p := &FarmerProfile{Document: json.RawMessage(doc)}
			got, err := p.Decode()
			assert.NoError(t, err)
			assert.Nil(t, got)
		}
	})

	t.Run("valid document", func(t *testing.T) {
		p := &FarmerProfile{Document: json.RawMessage(`{"landDetails":{"soilType":"Loamy"},"cropsGrown":[{"cropName":"Rice","isActive":true}]}`)}
		got, err := p.Decode()
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Loamy", got.LandDetails.SoilType)
		assert.Len(t, got.CropsGrown, 1)
	})

	t.Run("malformed document", func(t *testing.T) {
		p := &FarmerProfile{Document: json.RawMessage(`{"cropsGrown":`)}
		_, err := p.Decode()
		assert.Error(t, err)
	})
}

func TestActiveCrops(t *testing.T) {
	var nilProfile *FarmProfile
	assert.Nil(t, nilProfile.ActiveCrops())

	p := &FarmProfile{CropsGrown: []Crop{
		{CropName: "Rice", IsActive: true},
		{CropName: "Wheat"},
		{CropName: "Pepper", IsActive: true},
	}}
	active := p.ActiveCrops()
	require.Len(t, active, 2)
	assert.Equal(t, "Rice", active[0].CropName)
	assert.Equal(t, "Pepper", active[1].CropName)
}

func TestSoilDetailsPHValue(t *testing.T) {
	ph, legacy := 6.5, 7.2

	var none *SoilDetails
	assert.Nil(t, none.PHValue())

	assert.Equal(t, &legacy, (&SoilDetails{SoilPH: &legacy}).PHValue())
	assert.Equal(t, &ph, (&SoilDetails{PH: &ph, SoilPH: &legacy}).PHValue())
}

func TestReadingJSON(t *testing.T) {
	v := 6.8
	out, err := json.Marshal(NewReading(&v))
	require.NoError(t, err)
	assert.Equal(t, "6.8", string(out))

	out, err = json.Marshal(NewReading(nil))
	require.NoError(t, err)
	assert.Equal(t, `"unknown"`, string(out))

	tests := []struct {
		in   string
		want Reading
	}{
		{`6.8`, Reading{Value: 6.8, Recorded: true}},
		{`"7.1"`, Reading{Value: 7.1, Recorded: true}},
		{`"unknown"`, Reading{}},
		{`""`, Reading{}},
	}
	for _, tt := range tests {
		var r Reading
		require.NoError(t, json.Unmarshal([]byte(tt.in), &r), tt.in)
		assert.Equal(t, tt.want, r, tt.in)
	}

	var r Reading
	assert.Error(t, json.Unmarshal([]byte(`"acidic"`), &r))
	assert.Equal(t, "unknown", Reading{}.String())
	assert.Equal(t, "6.5", Reading{Value: 6.5, Recorded: true}.String())
}

func TestExportJobTransitions(t *testing.T) {
	j := &ExportJob{Status: ExportStatusQueued}
	assert.True(t, j.MayStart())
	assert.True(t, j.MayFail())
	assert.False(t, j.MayComplete())
	assert.False(t, j.MayRetry())

	j.Status = ExportStatusFailed
	assert.True(t, j.MayRetry())
	assert.False(t, j.MayFail())
}
