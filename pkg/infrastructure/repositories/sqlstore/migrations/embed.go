// Package migrations embeds the schema of each SQL dialect.
package migrations

import "embed"

// SQLite contains the SQLite migrations under sqlite/.
//
//go:embed sqlite/*.sql
var SQLite embed.FS

// MySQL contains the MySQL migrations under mysql/.
//
//go:embed mysql/*.sql
var MySQL embed.FS
