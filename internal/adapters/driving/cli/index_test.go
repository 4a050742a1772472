package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexCmd_Use(t *testing.T) {
	assert.Equal(t, "index", indexCmd.Use)
	assert.NotNil(t, indexCmd.Flags().Lookup("reports-dir"))
	assert.NotNil(t, indexCmd.Flags().Lookup("db"))
	assert.NotNil(t, indexCmd.Flags().Lookup("max-pages"))
}

func TestIndexCmd_IndexesReports(t *testing.T) {
	env := setupTestServices(t)
	reports, _, db := reportsFixture(t)

	out, err := env.run(t, nil, "index", "--reports-dir", reports, "--db", db)

	require.NoError(t, err)
	assert.Contains(t, out, "[INFO] Indexed/updated 2 files -> "+db+"\n")
	assert.Contains(t, out, "[INFO] Skipped 1 empty, 0 failed")
	assert.FileExists(t, db)
	assert.Zero(t, env.vision.calls)
}

func TestIndexCmd_NeedsNoCredential(t *testing.T) {
	env := setupTestServices(t)
	env.vars = map[string]string{}
	reports, _, db := reportsFixture(t)

	_, err := env.run(t, nil, "index", "--reports-dir", reports, "--db", db)

	assert.NoError(t, err)
}

func TestIndexCmd_CountsFailures(t *testing.T) {
	env := setupTestServices(t)
	reports, _, db := reportsFixture(t)
	writeFixture(t, reports, "broken.pdf", "%PDF-1.4 not a real pdf")

	out, err := env.run(t, nil, "index", "--reports_dir", reports, "--db", db)

	require.NoError(t, err)
	assert.Contains(t, out, "Indexed/updated 2 files")
	assert.Contains(t, out, "1 failed")
}

func TestIndexCmd_MissingReportsDir(t *testing.T) {
	env := setupTestServices(t)
	db := filepath.Join(t.TempDir(), "x.db")

	_, err := env.run(t, nil, "index", "--reports-dir", "/non/existent/reports", "--db", db)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Reports dir not found: /non/existent/reports")
	_, statErr := os.Stat(db)
	assert.True(t, os.IsNotExist(statErr))
}

func TestIndexCmd_NegativeMaxPages(t *testing.T) {
	env := setupTestServices(t)
	reports, _, db := reportsFixture(t)

	_, err := env.run(t, nil, "index", "--reports-dir", reports, "--db", db, "--max-pages", "-1")

	assert.Error(t, err)
}

func TestWatchCmd_IndexesThenStops(t *testing.T) {
	env := setupTestServices(t)
	reports, _, db := reportsFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out, err := env.runContext(t, ctx, nil, "watch", "--reports-dir", reports, "--db", db)

	require.NoError(t, err)
	assert.Contains(t, out, "[INFO] Indexed/updated 2 files -> "+db)
	assert.Contains(t, out, "[INFO] Watching "+reports)
}
