package document

import (
	"fmt"
	"slices"

	"github.com/benoitkugler/okpaper/item"
)

// selection maps item ids to the selected items, keeping
// the insertion order. count caches the size of the mapping and
// is updated only by insert and remove.
type selection struct {
	items map[int64]item.Drawable
	order []int64
	count int
}

func newSelection() selection {
	return selection{items: make(map[int64]item.Drawable)}
}

// check panics if the cached count is out of sync.
func (s *selection) check() {
	if s.count < 0 || s.count != len(s.items) || s.count != len(s.order) {
		panic(fmt.Sprintf("document: inconsistent selection (count %d, %d items, %d ids)",
			s.count, len(s.items), len(s.order)))
	}
}

// insert returns false if the id is already selected.
func (s *selection) insert(it item.Drawable) bool {
	id := it.ID()
	if _, has := s.items[id]; has {
		s.items[id] = it
		return false
	}
	s.items[id] = it
	s.order = append(s.order, id)
	s.count++
	s.check()
	return true
}

// remove returns false if the id is not selected.
func (s *selection) remove(id int64) bool {
	if _, has := s.items[id]; !has {
		return false
	}
	delete(s.items, id)
	if i := slices.Index(s.order, id); i != -1 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	s.count--
	s.check()
	return true
}

// list returns the selected items, in selection order.
func (s *selection) list() []item.Drawable {
	out := make([]item.Drawable, len(s.order))
	for i, id := range s.order {
		out[i] = s.items[id]
	}
	return out
}

// SelectItem adds or removes `it` from the selection.
// It is called by the items of the document when their selection
// flag changes, and is idempotent: selecting a selected item, or
// deselecting an unselected one, does nothing.
//
// SelectItem does not modify the flag of the item; use
// item.Item.SetSelected or SetSelectedItems to keep both in sync.
func (d *Document) SelectItem(it item.Drawable, selected bool) {
	if it == nil {
		return
	}
	if selected {
		d.selection.insert(it)
	} else {
		d.selection.remove(it.ID())
	}
}

// SelectedItems returns the selected items, in the order they
// were selected, or an empty slice.
//
// Groups whose children are all selected are not collapsed, and
// the order does not follow the painting order.
func (d *Document) SelectedItems() []item.Drawable { return d.selection.list() }

// SelectedItemCount returns the number of selected items.
func (d *Document) SelectedItemCount() int { return d.selection.count }

// IsSelected returns true if the item with the given id is selected.
func (d *Document) IsSelected(id int64) bool {
	_, has := d.selection.items[id]
	return has
}

// SetSelectedItems replaces the selection by `items`.
// Items of the drawing tree have their flag updated.
func (d *Document) SetSelectedItems(items []item.Drawable) {
	keep := make(map[int64]bool, len(items))
	for _, it := range items {
		if it != nil {
			keep[it.ID()] = true
		}
	}
	for _, it := range d.selection.list() {
		if !keep[it.ID()] {
			setSelected(d, it, false)
		}
	}
	for _, it := range items {
		if it != nil {
			setSelected(d, it, true)
		}
	}
}

// DeselectAll empties the selection.
func (d *Document) DeselectAll() { d.SetSelectedItems(nil) }

// setSelected goes through the item flag when possible,
// so that the item notifies its own selector.
func setSelected(d *Document, it item.Drawable, selected bool) {
	if tree, ok := it.(item.Item); ok && tree.Selector() == item.Selector(d) {
		tree.SetSelected(selected)
	}
	// the flag may already be in the requested state while the
	// selection is not, after direct SelectItem calls
	d.SelectItem(it, selected)
}
