package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	st := Load(filepath.Join(t.TempDir(), "settings.json"))
	assert.Equal(t, Defaults(), st.Current())
}

func TestLoad_CorruptFileUsesDefaults(t *testing.T) {
	path := writeFile(t, "settings.json", `{"currency": "$", "weight_unit": `)
	st := Load(path)
	assert.Equal(t, Defaults(), st.Current())
}

func TestLoad_ReadsValues(t *testing.T) {
	path := writeFile(t, "settings.json", `{"currency": "$", "weight_unit": "lb", "volume_unit": "ml"}`)
	st := Load(path)
	assert.Equal(t, Settings{Currency: "$", WeightUnit: "lb", VolumeUnit: "ml"}, st.Current())
}

func TestLoad_PartialFileFillsDefaults(t *testing.T) {
	path := writeFile(t, "settings.json", `{"volume_unit": "gal"}`)
	st := Load(path)
	assert.Equal(t, Settings{Currency: "€", WeightUnit: "kg", VolumeUnit: "gal"}, st.Current())
}

func TestLoad_UnknownUnitFallsBackPerClass(t *testing.T) {
	path := writeFile(t, "settings.json", `{"currency": "£", "weight_unit": "ml", "volume_unit": "stone"}`)
	st := Load(path)
	assert.Equal(t, Settings{Currency: "£", WeightUnit: "kg", VolumeUnit: "l"}, st.Current())
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	want := Settings{Currency: "kr", WeightUnit: "g", VolumeUnit: "fl oz"}
	require.NoError(t, Save(path, want))

	assert.Equal(t, want, Load(path).Current())
}

func TestSave_RejectsNonJSONPath(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "settings.yaml"), Defaults())
	assert.ErrorContains(t, err, "not a .json file")
}

func TestStore_UpdatePersistsSanitized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	st := Load(path)

	require.NoError(t, st.Update(Settings{Currency: " ", WeightUnit: "oz", VolumeUnit: "bucket"}))
	want := Settings{Currency: "€", WeightUnit: "oz", VolumeUnit: "l"}
	assert.Equal(t, want, st.Current())
	assert.Equal(t, want, Load(path).Current())
}
