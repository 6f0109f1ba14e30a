package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"001_schema_uploads.sql",
		"002_rows.sql",
		"003_issues.sql",
		"004_bulk_apply_audit.sql",
	}, names)
}
