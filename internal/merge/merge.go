// Package merge implements the Structural Merge of §4.D: splicing one
// ordered item list into another by insertBeforeId.
package merge

import (
	"errors"
	"fmt"

	"github.com/laxarjs/laxar-assembler/internal/artifact"
)

// ErrMissingInsertBefore is returned, wrapped with the offending value, when
// an item's InsertBeforeID does not match any id already present in target.
var ErrMissingInsertBefore = errors.New("no id found that matches insertBeforeId value")

// ItemLists appends each item in source to target in order. An item
// declaring InsertBeforeID = I is inserted immediately before the first
// existing target item whose ID equals I; if no such target item exists,
// ItemLists fails with ErrMissingInsertBefore. owningPage is carried only
// for caller-side wrapping; it is not part of the returned error text.
func ItemLists(target, source []*artifact.Item, owningPage string) ([]*artifact.Item, error) {
	result := make([]*artifact.Item, len(target))
	copy(result, target)

	for _, item := range source {
		if item.InsertBeforeID == "" {
			result = append(result, item)
			continue
		}

		idx := indexOfID(result, item.InsertBeforeID)
		if idx < 0 {
			return nil, fmt.Errorf("%w %q", ErrMissingInsertBefore, item.InsertBeforeID)
		}
		result = append(result[:idx], append([]*artifact.Item{item}, result[idx:]...)...)
	}

	return result, nil
}

func indexOfID(items []*artifact.Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
