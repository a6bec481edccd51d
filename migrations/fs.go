// Package migrations embeds the SQL schema migrations for both storage
// drivers. Files are named NNN_name.sql and applied in version order.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
