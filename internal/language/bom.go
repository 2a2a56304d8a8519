package language

import "strings"

const utf8BOM = "﻿"

// stripBOM removes a leading UTF-8 byte-order mark, if present. Used by
// the java/rust/go adapters per spec.md §4.3's source-name column.
func stripBOM(code string) string {
	return strings.TrimPrefix(code, utf8BOM)
}
