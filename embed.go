package flatpress

import "embed"

// EmbeddedAssets holds the default stylesheet served at
// /public/flatpress.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
