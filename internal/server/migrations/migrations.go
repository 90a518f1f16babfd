// Package migrations embeds the goose SQL migrations, one directory per
// SQL dialect.
package migrations

import "embed"

// Migrations holds postgres/*.sql and sqlite/*.sql.
//
//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// Dir returns the migration directory for a database/sql driver name.
func Dir(driverName string) string {
	if driverName == "sqlite" {
		return "sqlite"
	}
	return "postgres"
}
