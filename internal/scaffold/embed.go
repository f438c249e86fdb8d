package scaffold

import "embed"

// The placeholder file names start with an underscore, hence all:.
//
//go:embed all:scaffolds
var scaffoldFS embed.FS

//go:embed schema/component.schema.json
var componentSchema []byte
