package pages

import "github.com/geocoder89/opay/internal/dom"

// Carousel rotates the active class over a fixed set of ad elements.
type Carousel struct {
	items   []*dom.Element
	current int
}

// NewCarousel activates the first item, if any.
func NewCarousel(items []*dom.Element) *Carousel {
	c := &Carousel{items: items}
	if len(items) > 0 {
		items[0].AddClass(ClassActive)
	}
	return c
}

func (c *Carousel) Len() int {
	return len(c.items)
}

func (c *Carousel) Current() int {
	return c.current
}

// Advance moves the active class to the next item, wrapping around.
func (c *Carousel) Advance() int {
	if len(c.items) == 0 {
		return 0
	}

	c.items[c.current].RemoveClass(ClassActive)
	c.current = (c.current + 1) % len(c.items)
	c.items[c.current].AddClass(ClassActive)

	return c.current
}
