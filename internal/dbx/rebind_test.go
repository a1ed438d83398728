package dbx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		in     string
		want   string
	}{
		{"sqlite unchanged", DriverSQLite, `SELECT * FROM t WHERE a=? AND b=?`, `SELECT * FROM t WHERE a=? AND b=?`},
		{"postgres numbered", DriverPostgres, `SELECT * FROM t WHERE a=? AND b=?`, `SELECT * FROM t WHERE a=$1 AND b=$2`},
		{"postgres upsert", DriverPostgres,
			`INSERT INTO metadata (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			`INSERT INTO metadata (key, value) VALUES ($1, $2) ON CONFLICT(key) DO UPDATE SET value = excluded.value`},
		{"no placeholders", DriverPostgres, `SELECT 1`, `SELECT 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rebind(tt.driver, tt.in))
		})
	}
}

func TestNotNullBlob(t *testing.T) {
	assert.Equal(t, []byte{}, NotNullBlob(nil))
	assert.NotNil(t, NotNullBlob(nil))
	assert.Equal(t, []byte{1, 2}, NotNullBlob([]byte{1, 2}))
}
