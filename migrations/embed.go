// Package migrations содержит SQL-миграции схемы, вшитые в бинарник
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
