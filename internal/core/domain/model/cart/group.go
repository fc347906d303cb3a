package cart

import "restaurant/internal/core/domain/model/kernel"

// Section is a run of items sharing a category.
type Section[T any] struct {
	Category string
	Items    []T
}

// Group is a category of cart lines.
type Group = Section[Line]

// GroupBy partitions items by category. Sections appear in the order their category is
// first seen, and items keep their relative order inside a section. A blank category
// is reported as kernel.DefaultCategory.
func GroupBy[T any](items []T, category func(T) string) []Section[T] {
	sections := make([]Section[T], 0)
	index := make(map[string]int)

	for _, item := range items {
		c := kernel.CategoryOrDefault(category(item))
		i, ok := index[c]
		if !ok {
			i = len(sections)
			index[c] = i
			sections = append(sections, Section[T]{Category: c})
		}
		sections[i].Items = append(sections[i].Items, item)
	}

	return sections
}

// GroupByCategory groups cart lines with GroupBy.
func GroupByCategory(lines []Line) []Group {
	return GroupBy(lines, func(l Line) string { return l.Category })
}

// Flatten concatenates the sections back into one slice. Flatten(GroupBy(x)) holds the
// same multiset as x.
func Flatten[T any](sections []Section[T]) []T {
	n := 0
	for _, s := range sections {
		n += len(s.Items)
	}
	items := make([]T, 0, n)
	for _, s := range sections {
		items = append(items, s.Items...)
	}
	return items
}
