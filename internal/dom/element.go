package dom

import "slices"

// Element is one node of a view. Only the attributes the page controllers
// read or write are modelled.
type Element struct {
	ID      string            `json:"id"`
	Tag     string            `json:"tag"`
	Type    string            `json:"type,omitempty"`
	Value   string            `json:"value,omitempty"`
	Text    string            `json:"text,omitempty"`
	HTML    string            `json:"html,omitempty"`
	Classes []string          `json:"classes,omitempty"`
	Style   map[string]string `json:"style,omitempty"`
}

func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.Classes, class)
}

func (e *Element) AddClass(class string) {
	if e.HasClass(class) {
		return
	}
	e.Classes = append(e.Classes, class)
}

func (e *Element) RemoveClass(class string) {
	e.Classes = slices.DeleteFunc(e.Classes, func(c string) bool { return c == class })
}

// ToggleClass flips class and reports whether it is now present.
func (e *Element) ToggleClass(class string) bool {
	if e.HasClass(class) {
		e.RemoveClass(class)
		return false
	}
	e.AddClass(class)
	return true
}

// ReplaceClass swaps from for to, adding to even if from was absent.
func (e *Element) ReplaceClass(from, to string) {
	e.RemoveClass(from)
	e.AddClass(to)
}

func (e *Element) SetStyle(prop, value string) {
	if e.Style == nil {
		e.Style = make(map[string]string)
	}
	e.Style[prop] = value
}

func (e *Element) StyleValue(prop string) string {
	return e.Style[prop]
}

func (e *Element) clone() Element {
	c := *e
	c.Classes = slices.Clone(e.Classes)
	if e.Style != nil {
		c.Style = make(map[string]string, len(e.Style))
		for k, v := range e.Style {
			c.Style[k] = v
		}
	}
	return c
}
