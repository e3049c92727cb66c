package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_EveryUpHasDown(t *testing.T) {
	entries, err := fs.ReadDir(FS, ".")
	require.NoError(t, err)

	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name()] = true
	}
	require.NotEmpty(t, names)

	for name := range names {
		if strings.HasSuffix(name, ".up.sql") {
			down := strings.TrimSuffix(name, ".up.sql") + ".down.sql"
			assert.True(t, names[down], "missing %s", down)
		}
	}
}

func TestFS_InitCreatesLifecycleTables(t *testing.T) {
	b, err := fs.ReadFile(FS, "000001_init_schema.up.sql")
	require.NoError(t, err)
	sql := string(b)

	for _, table := range []string{"accounts", "doctor_profiles", "consultations", "ratings", "transport_providers", "transport_bookings"} {
		assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}
