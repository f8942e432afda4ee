package database

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Dialect covers the differences between the SQL backends that can hold the
// progress table
type Dialect interface {
	DriverName() string

	// RewriteQuery converts ? placeholders where the driver expects another form
	RewriteQuery(query string) string

	// Tune sizes the pool and applies session settings once the database answers
	Tune(db *sql.DB) error

	// MigrationsSubdir names the directory under the migrations path
	MigrationsSubdir() string

	CreateMigrationsTableQuery() string

	// UpsertProgressQuery writes one progress row; arguments are (profile_id, data)
	UpsertProgressQuery() string
}

// limitPool caps the pool of a store that holds one row per profile
func limitPool(db *sql.DB, maxOpen int) {
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)
}

// numberPlaceholders turns "a = ? AND b = ?" into "a = $1 AND b = $2"
func numberPlaceholders(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
