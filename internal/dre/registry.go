package dre

import (
	"errors"
	"fmt"
	"slices"
)

// Category is a named group of accounts rendered together. Members[0] is
// the category's own total line; the rest are its constituents in display
// order. The registry does not check that the total equals the sum of its
// members.
type Category struct {
	Name        string   `yaml:"name" json:"name"`
	Title       string   `yaml:"title,omitempty" json:"title,omitempty"`
	Members     []string `yaml:"members" json:"members"`
	Headline    string   `yaml:"headline,omitempty" json:"headline,omitempty"`
	RatioToBase bool     `yaml:"ratio_to_base,omitempty" json:"ratio_to_base,omitempty"`
	// DropEmptyPeriods hides periods in which every surviving member is zero.
	DropEmptyPeriods bool `yaml:"drop_empty_periods,omitempty" json:"drop_empty_periods,omitempty"`
}

// Total returns the category's total line.
func (c Category) Total() string {
	if len(c.Members) == 0 {
		return ""
	}
	return c.Members[0]
}

// HeadlineColumn returns the column summarised for the category when the
// caller does not name one.
func (c Category) HeadlineColumn() string {
	if c.Headline != "" {
		return c.Headline
	}
	return c.Total()
}

func (c Category) clone() Category {
	c.Members = append([]string(nil), c.Members...)
	return c
}

// Registry is an ordered, read-only set of categories. It is safe for
// concurrent use since it never changes after construction.
type Registry struct {
	byName map[string]int
	order  []Category
}

// NewRegistry validates and stores categories in the given order.
func NewRegistry(categories ...Category) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]int, len(categories)),
		order:  make([]Category, 0, len(categories)),
	}

	for i, c := range categories {
		if c.Name == "" {
			return nil, fmt.Errorf("category %d has an empty name", i)
		}
		if _, exists := r.byName[c.Name]; exists {
			return nil, fmt.Errorf("category %q already registered", c.Name)
		}
		if len(c.Members) == 0 {
			return nil, fmt.Errorf("category %q has no members", c.Name)
		}

		seen := make(map[string]bool, len(c.Members))
		for _, m := range c.Members {
			if m == "" {
				return nil, fmt.Errorf("category %q has an empty member", c.Name)
			}
			if seen[m] {
				return nil, fmt.Errorf("category %q lists %q twice", c.Name, m)
			}
			seen[m] = true
		}

		r.byName[c.Name] = len(r.order)
		r.order = append(r.order, c.clone())
	}

	return r, nil
}

// Lookup returns a copy of the named category.
func (r *Registry) Lookup(name string) (Category, error) {
	i, ok := r.byName[name]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrCategoryNotFound, name)
	}
	return r.order[i].clone(), nil
}

// Names returns the category names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	for i, c := range r.order {
		names[i] = c.Name
	}
	return names
}

// Categories returns copies of every category in registration order.
func (r *Registry) Categories() []Category {
	out := make([]Category, len(r.order))
	for i, c := range r.order {
		out[i] = c.clone()
	}
	return out
}

// Len returns the number of categories.
func (r *Registry) Len() int {
	return len(r.order)
}

// Validate checks every member and headline against the statement schema.
// All missing identifiers are reported at once.
func (r *Registry) Validate(t *Table) error {
	var errs []error
	for _, c := range r.order {
		for _, m := range c.Members {
			if !t.Has(m) {
				errs = append(errs, accountNotFound(m, c.Name))
			}
		}
		if c.Headline != "" && !t.Has(c.Headline) && !slices.Contains(c.Members, c.Headline) {
			errs = append(errs, accountNotFound(c.Headline, c.Name))
		}
	}
	return errors.Join(errs...)
}
