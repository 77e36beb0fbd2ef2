package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordsImportCmd(t *testing.T) {
	f := setupTestFactory(t)
	f.files["a.json"] = sampleRecords()[:2]
	f.files["b.json"] = sampleRecords()[2:]

	out, err := execute(t, "records", "import", "a.json", "b.json", "--db", "/tmp/snap")

	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 records from 2 file(s).")
	assert.Equal(t, "/tmp/snap", f.lastDBDir)
	assert.Equal(t, 1, f.closed)

	n, err := f.store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRecordsImportCmd_RequiresFile(t *testing.T) {
	setupTestFactory(t)

	_, err := execute(t, "records", "import")

	assert.Error(t, err)
}

func TestRecordsImportCmd_ReadError(t *testing.T) {
	setupTestFactory(t)

	_, err := execute(t, "records", "import", "missing.json")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
}

func TestRecordsCountCmd(t *testing.T) {
	f := setupTestFactory(t)
	_, err := f.store.Import(context.Background(), sampleRecords())
	require.NoError(t, err)

	out, err := execute(t, "records", "count")

	require.NoError(t, err)
	assert.Contains(t, out, "3 records")
}
