// Package sample embeds the built-in FAQ document collection.
package sample

import _ "embed"

//go:embed faq.json
var faqJSON []byte

// FAQ returns the raw JSON of the built-in FAQ collection.
func FAQ() []byte {
	out := make([]byte, len(faqJSON))
	copy(out, faqJSON)
	return out
}
