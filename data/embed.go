// Package data bundles the default seed fixtures.
package data

import "embed"

// FS contains one JSON array per seeded entity type.
//
//go:embed *.json
var FS embed.FS
