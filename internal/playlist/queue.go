package playlist

import (
	"math/rand/v2"
	"slices"

	"github.com/samber/lo"
)

// AddOptions controls how AddTracks inserts new items.
type AddOptions struct {
	// MarkFirstActive activates the first newly added item.
	MarkFirstActive bool
}

// Removal describes an item that left the queue.
type Removal struct {
	Item      *Item
	Index     int // position before removal
	WasActive bool
}

// Queue is the ordered set of items the stream plays from.
// Items are kept sorted by Sequence, and no two items share a track id.
// At most one item is active.
//
// Queue is not safe for concurrent use.
type Queue struct {
	items   []*Item
	nextSeq int
	intn    func(int) int

	onAdded     []func([]*Item)
	onRemoved   []func(Removal)
	onReset     []func()
	onActivated []func(*Item)
	onChanged   []func()
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{intn: rand.IntN}
}

// SetRandom replaces the random source used by RandomRelatedTrack.
func (q *Queue) SetRandom(intn func(int) int) {
	q.intn = intn
}

// OnAdded registers a callback for items inserted into the queue.
func (q *Queue) OnAdded(fn func([]*Item)) { q.onAdded = append(q.onAdded, fn) }

// OnRemoved registers a callback for items removed one at a time.
func (q *Queue) OnRemoved(fn func(Removal)) { q.onRemoved = append(q.onRemoved, fn) }

// OnReset registers a callback for wholesale replacement of the queue.
func (q *Queue) OnReset(fn func()) { q.onReset = append(q.onReset, fn) }

// OnActivated registers a callback fired whenever an item is activated,
// including re-activation of the item that is already active.
func (q *Queue) OnActivated(fn func(*Item)) { q.onActivated = append(q.onActivated, fn) }

// OnChanged registers a callback for any persisted change to the queue.
func (q *Queue) OnChanged(fn func()) { q.onChanged = append(q.onChanged, fn) }

// Len returns the number of items.
func (q *Queue) Len() int { return len(q.items) }

// IsEmpty reports whether the queue has no items.
func (q *Queue) IsEmpty() bool { return len(q.items) == 0 }

// Items returns a copy of the items in order.
func (q *Queue) Items() []*Item { return slices.Clone(q.items) }

// At returns the item at index, or nil if out of range.
func (q *Queue) At(index int) *Item {
	if index < 0 || index >= len(q.items) {
		return nil
	}
	return q.items[index]
}

// First returns the first item, or nil if empty.
func (q *Queue) First() *Item { return q.At(0) }

// Last returns the last item, or nil if empty.
func (q *Queue) Last() *Item { return q.At(len(q.items) - 1) }

// Get returns the item with the given id, or nil.
func (q *Queue) Get(id string) *Item {
	it, _ := lo.Find(q.items, func(it *Item) bool { return it.ID == id })
	return it
}

// ByTrackID returns the item holding the given track, or nil.
func (q *Queue) ByTrackID(trackID string) *Item {
	it, _ := lo.Find(q.items, func(it *Item) bool { return it.Track.ID == trackID })
	return it
}

// IndexOf returns the position of item, or -1 if it is not in the queue.
func (q *Queue) IndexOf(item *Item) int {
	if item == nil {
		return -1
	}
	return slices.Index(q.items, item)
}

// Contains reports whether the item is currently in the queue.
func (q *Queue) Contains(item *Item) bool {
	return q.IndexOf(item) >= 0
}

// ActiveItem returns the active item, or nil if none.
func (q *Queue) ActiveItem() *Item {
	it, _ := lo.Find(q.items, func(it *Item) bool { return it.active })
	return it
}

// ActiveIndex returns the position of the active item, or -1.
func (q *Queue) ActiveIndex() int {
	return slices.IndexFunc(q.items, func(it *Item) bool { return it.active })
}

// Add inserts items at the end of the queue. An item whose track is already
// queued is not inserted; the existing item is returned in its place.
// The result has one entry per argument.
func (q *Queue) Add(items ...*Item) []*Item {
	resolved := make([]*Item, 0, len(items))
	var added []*Item
	for _, it := range items {
		if it == nil {
			continue
		}
		if existing := q.ByTrackID(it.Track.ID); existing != nil {
			resolved = append(resolved, existing)
			continue
		}
		q.insert(it)
		added = append(added, it)
		resolved = append(resolved, it)
	}
	if len(added) > 0 {
		q.emitAdded(added)
		q.emitChanged()
	}
	return resolved
}

// AddTracks appends new items for the tracks not already queued and returns
// the items actually added.
func (q *Queue) AddTracks(tracks []Track, opts AddOptions) []*Item {
	var added []*Item
	for _, t := range tracks {
		if t.IsZero() || q.ByTrackID(t.ID) != nil {
			continue
		}
		if lo.ContainsBy(added, func(it *Item) bool { return it.Track.ID == t.ID }) {
			continue
		}
		it := NewItem(t)
		q.insert(it)
		added = append(added, it)
	}
	if len(added) == 0 {
		return nil
	}
	q.emitAdded(added)
	q.emitChanged()
	if opts.MarkFirstActive {
		q.Activate(added[0])
	}
	return added
}

func (q *Queue) insert(it *Item) {
	it.Sequence = q.nextSeq
	q.nextSeq++
	it.active = false
	q.items = append(q.items, it)
}

// Remove takes the item out of the queue. It reports false if the item was
// not queued.
func (q *Queue) Remove(item *Item) bool {
	idx := q.IndexOf(item)
	if idx < 0 {
		return false
	}
	q.RemoveAt(idx)
	return true
}

// RemoveAt removes the item at index and returns it, or nil if out of range.
func (q *Queue) RemoveAt(index int) *Item {
	it := q.At(index)
	if it == nil {
		return nil
	}
	q.items = slices.Delete(q.items, index, index+1)
	wasActive := it.active
	it.active = false
	it.selected = false
	for _, fn := range q.onRemoved {
		fn(Removal{Item: it, Index: index, WasActive: wasActive})
	}
	q.emitChanged()
	return it
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.Reset()
}

// Reset replaces the queue contents with tracks from the given items,
// dropping duplicates. With no arguments it empties the queue.
func (q *Queue) Reset(items ...*Item) {
	for _, it := range q.items {
		it.active = false
	}
	q.items = nil
	q.nextSeq = 0
	for _, it := range items {
		if it == nil || q.ByTrackID(it.Track.ID) != nil {
			continue
		}
		q.insert(it)
	}
	for _, fn := range q.onReset {
		fn()
	}
	q.emitChanged()
}

// Restore replaces the queue with persisted items without firing activation.
// Items keep their stored order and active flag.
func (q *Queue) Restore(snaps []ItemSnapshot) {
	sorted := slices.Clone(snaps)
	slices.SortStableFunc(sorted, func(a, b ItemSnapshot) int { return a.Sequence - b.Sequence })
	q.items = nil
	q.nextSeq = 0
	hasActive := false
	for _, s := range sorted {
		if s.Track.IsZero() || q.ByTrackID(s.Track.ID) != nil {
			continue
		}
		it := itemFromSnapshot(s)
		if it.active && hasActive {
			it.active = false
		}
		hasActive = hasActive || it.active
		it.Sequence = q.nextSeq
		q.nextSeq++
		q.items = append(q.items, it)
	}
}

// Snapshot returns the persisted form of every item in order.
func (q *Queue) Snapshot() []ItemSnapshot {
	return lo.Map(q.items, func(it *Item, _ int) ItemSnapshot { return it.Snapshot() })
}

// Activate makes item the active item, deactivating the previous one, and
// marks it as recently played. Activating the already-active item re-fires
// the activation. It reports false if the item is not queued.
func (q *Queue) Activate(item *Item) bool {
	if !q.Contains(item) {
		return false
	}
	if !item.active {
		if prev := q.ActiveItem(); prev != nil {
			prev.active = false
		}
		item.active = true
		item.playedRecently = true
		q.emitChanged()
	}
	for _, fn := range q.onActivated {
		fn(item)
	}
	return true
}

// Deactivate clears the active flag without activating anything else.
func (q *Queue) Deactivate() {
	if prev := q.ActiveItem(); prev != nil {
		prev.active = false
		q.emitChanged()
	}
}

// NotPlayedRecently returns the items that have not been active yet.
// An empty result means every item has been played recently.
func (q *Queue) NotPlayedRecently() []*Item {
	return lo.Filter(q.items, func(it *Item, _ int) bool { return !it.playedRecently })
}

// SetRelatedTracks stores related tracks on item. Responses for items that
// have since left the queue are discarded and false is returned.
func (q *Queue) SetRelatedTracks(item *Item, tracks []Track) bool {
	if !q.Contains(item) {
		return false
	}
	item.related = slices.Clone(tracks)
	q.emitChanged()
	return true
}

// RandomRelatedTrack picks uniformly from the related tracks of all items,
// excluding tracks that are already queued.
func (q *Queue) RandomRelatedTrack() (Track, bool) {
	seen := make(map[string]struct{})
	var pool []Track
	for _, it := range q.items {
		for _, t := range it.related {
			if _, dup := seen[t.ID]; dup || t.IsZero() {
				continue
			}
			seen[t.ID] = struct{}{}
			if q.ByTrackID(t.ID) == nil {
				pool = append(pool, t)
			}
		}
	}
	if len(pool) == 0 {
		return Track{}, false
	}
	return pool[q.intn(len(pool))], true
}

// Move relocates the item at from to position to and renumbers sequences.
func (q *Queue) Move(from, to int) bool {
	if from < 0 || from >= len(q.items) || to < 0 || to >= len(q.items) || from == to {
		return false
	}
	it := q.items[from]
	q.items = slices.Delete(q.items, from, from+1)
	q.items = slices.Insert(q.items, to, it)
	for i, it := range q.items {
		it.Sequence = i
	}
	q.nextSeq = len(q.items)
	q.emitChanged()
	return true
}

// Select marks the item as selected; with exclusive it deselects the others.
func (q *Queue) Select(item *Item, exclusive bool) {
	if !q.Contains(item) {
		return
	}
	if exclusive {
		q.DeselectAll()
	}
	item.selected = true
}

// Deselect clears the item's selection flag.
func (q *Queue) Deselect(item *Item) {
	item.selected = false
}

// DeselectAll clears every selection flag.
func (q *Queue) DeselectAll() {
	for _, it := range q.items {
		it.selected = false
	}
}

// SelectedItems returns the selected items in order.
func (q *Queue) SelectedItems() []*Item {
	return lo.Filter(q.items, func(it *Item, _ int) bool { return it.selected })
}

// Rename changes an item's display title.
func (q *Queue) Rename(item *Item, title string) {
	if !q.Contains(item) || item.Title == title {
		return
	}
	item.Title = title
	q.emitChanged()
}

func (q *Queue) emitAdded(items []*Item) {
	for _, fn := range q.onAdded {
		fn(items)
	}
}

func (q *Queue) emitChanged() {
	for _, fn := range q.onChanged {
		fn()
	}
}
