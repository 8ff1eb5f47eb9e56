package reconciler

import (
	"encoding/json"
	"slices"

	"github.com/agentstation/shelfmap/pkg/books"
	"github.com/agentstation/shelfmap/pkg/normalize"
)

// Group is one category label with its normalized identifiers.
type Group struct {
	Label string   `json:"label" yaml:"label"`
	Keys  []string `json:"keys" yaml:"keys"`
}

// Categories groups normalized identifiers by their raw category label.
// Labels keep first-seen order and keys keep append order.
type Categories struct {
	labels []string
	groups map[string][]string
}

// BuildCategories derives the category index from the secondary dataset.
// Records missing either the category or the identifier contribute nothing.
func BuildCategories(secondary []books.Record) *Categories {
	c := &Categories{groups: map[string][]string{}}
	for _, rec := range secondary {
		label := rec.Category()
		id := rec.Identifier()
		if label == "" || id == "" {
			continue
		}
		if _, ok := c.groups[label]; !ok {
			c.labels = append(c.labels, label)
		}
		c.groups[label] = append(c.groups[label], normalize.Key(id))
	}
	return c
}

// Labels returns category labels in first-seen order.
func (c *Categories) Labels() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.labels)
}

// Keys returns the normalized identifiers filed under label.
func (c *Categories) Keys(label string) []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.groups[label])
}

// Len returns the number of labels.
func (c *Categories) Len() int {
	if c == nil {
		return 0
	}
	return len(c.labels)
}

// Map returns the grouping as a plain map. Iteration order is lost.
func (c *Categories) Map() map[string][]string {
	out := make(map[string][]string, c.Len())
	for _, l := range c.Labels() {
		out[l] = c.Keys(l)
	}
	return out
}

// Groups returns the grouping as an ordered list.
func (c *Categories) Groups() []Group {
	out := make([]Group, 0, c.Len())
	for _, l := range c.Labels() {
		out = append(out, Group{Label: l, Keys: c.Keys(l)})
	}
	return out
}

// MarshalJSON encodes the ordered group list.
func (c *Categories) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Groups())
}

// MarshalYAML encodes the ordered group list.
func (c *Categories) MarshalYAML() (any, error) {
	return c.Groups(), nil
}
