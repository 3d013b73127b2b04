package pooldb

import _ "embed"

// Schema is the full DDL for the pool database. Every statement is idempotent.
//
//go:embed schema.sql
var Schema string
