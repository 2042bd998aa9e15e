package sqlinline

import _ "embed"

// Schema creates every table the API reads. Statements are idempotent.
//
//go:embed schema.sql
var Schema string
