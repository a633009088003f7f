// Package migrations embeds the goose migration scripts for both supported
// storage backends. The repository manager picks the matching set.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

//go:embed sqlite/*.sql
var SQLite embed.FS
