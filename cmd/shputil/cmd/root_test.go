package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fceschmidt/shapefile-utils/pkg/shapefile/shapefiletest"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func fixturePath(t *testing.T) string {
	t.Helper()
	return shapefiletest.WriteTriplet(t, t.TempDir(), shapefiletest.DefaultFeatures()).ShpPath
}

func TestInfoCommand(t *testing.T) {
	out, err := executeCommand(t, "info", "--shp", fixturePath(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Shape type:  Point")
	assert.Contains(t, out, "Records:     3")
}

func TestGetCommand(t *testing.T) {
	shpPath := fixturePath(t)

	t.Run("found", func(t *testing.T) {
		out, err := executeCommand(t, "get", "1", "--shp", shpPath)
		require.NoError(t, err)
		assert.Contains(t, out, "Record 1: Point")
		assert.Contains(t, out, "NAME = Berlin")
		assert.Contains(t, out, "POP = 3645000")
	})

	t.Run("json output", func(t *testing.T) {
		out, err := executeCommand(t, "get", "1", "--shp", shpPath, "--json")
		require.NoError(t, err)
		assert.Contains(t, out, `"type": "Feature"`)
		assert.Contains(t, out, `"Point"`)
	})

	t.Run("not found", func(t *testing.T) {
		out, err := executeCommand(t, "get", "99", "--shp", shpPath, "--json=false")
		require.NoError(t, err)
		assert.Contains(t, out, "Record 99 not found")
	})

	t.Run("bad record number", func(t *testing.T) {
		out, err := executeCommand(t, "get", "zero", "--shp", shpPath)
		require.NoError(t, err)
		assert.Contains(t, out, `invalid record number "zero"`)
	})
}

func TestListCommand(t *testing.T) {
	shpPath := fixturePath(t)

	t.Run("summary lines", func(t *testing.T) {
		out, err := executeCommand(t, "list", "--shp", shpPath)
		require.NoError(t, err)
		assert.Contains(t, out, "NAME=Berlin")
		assert.Contains(t, out, "NAME=Spree")
		assert.Contains(t, out, "NullShape")
	})

	t.Run("feature collection", func(t *testing.T) {
		out, err := executeCommand(t, "list", "--shp", shpPath, "--json")
		require.NoError(t, err)
		assert.Contains(t, out, `"type": "FeatureCollection"`)
		assert.Contains(t, out, `"MultiLineString"`)
	})
}

func TestRootCommandRequiresPath(t *testing.T) {
	_, err := executeCommand(t, "info", "--shp", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no shapefile given")
}
