// Package defs reads entity class declarations from structured files.
//
// A declaration file is a TOML, YAML or JSONC document with a top-level
// "class" list. Every element carries the fields of one entity.ClassInfo:
//
//	[[class]]
//	type = "point"
//	name = "light"
//	description = "Invisible light source"
//	color = [1.0, 1.0, 0.0]
//	size = { min = [-8, -8, -8], max = [8, 8, 8] }
//	base = ["Light", "Targetname"]
//
// Problems inside a document become diagnostics; the offending class or
// property is skipped and decoding goes on.
package defs
