package validation

import "github.com/geocoder89/opay/internal/dom"

// ShowError makes the flag element visible. Missing flags are ignored.
func ShowError(doc *dom.Document, id string) {
	if el, ok := doc.Lookup(id); ok {
		el.SetStyle("display", "block")
	}
}

func HideError(doc *dom.Document, id string) {
	if el, ok := doc.Lookup(id); ok {
		el.SetStyle("display", "none")
	}
}

func ErrorVisible(doc *dom.Document, id string) bool {
	el, ok := doc.Lookup(id)
	return ok && el.StyleValue("display") == "block"
}
