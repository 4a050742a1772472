package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/snapfind/internal/core/domain"
)

func TestDocumentContentCmd(t *testing.T) {
	env := setupTestServices(t)
	reports, _, db := indexFixture(t, env)
	path := filepath.Join(reports, "tsmc.txt")

	out, err := env.run(t, nil, "document", "content", path, "--db", db)

	require.NoError(t, err)
	assert.Contains(t, out, "Path: "+path+"\n")
	assert.Contains(t, out, "Indexed: ")
	assert.Contains(t, out, "\nTSMC raised capex guidance for 2026\n")
}

func TestDocumentContentCmd_NotIndexed(t *testing.T) {
	env := setupTestServices(t)
	reports, _, db := indexFixture(t, env)

	_, err := env.run(t, nil, "document", "content", filepath.Join(reports, "empty.txt"), "--db", db)

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "is not indexed")
}
