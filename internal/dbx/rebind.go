package dbx

import "github.com/jmoiron/sqlx"

// Driver names accepted by the local database bootstrap.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Rebind rewrites '?' placeholders into the form expected by driver.
// Drivers sqlx does not know, sqlite among them, get the query unchanged.
func Rebind(driver, query string) string {
	return sqlx.Rebind(sqlx.BindType(driver), query)
}

// NotNullBlob returns b, or an empty slice when b is nil. Drivers scan a
// zero-length BLOB as nil; rows read from NOT NULL columns go through this
// so they can be written back.
func NotNullBlob(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
