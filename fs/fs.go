package appfs

import "embed"

// FS holds all runtime assets shipped with the binary: goose
// migrations, email templates and the common-passwords list.
//go:embed migrations templates assets
var FS embed.FS
