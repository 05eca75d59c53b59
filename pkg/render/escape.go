package render

import "strings"

var (
	textReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

	// Attribute values are double-quoted. Whitespace controls are encoded
	// so attribute-value normalisation keeps them.
	attrReplacer = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#10;", "\r", "&#13;", "\t", "&#9;",
	)
)

func escapeText(s string) string { return textReplacer.Replace(s) }

func escapeAttr(s string) string { return attrReplacer.Replace(s) }
