package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laxarjs/laxar-assembler/internal/artifact"
)

func item(id string, insertBefore ...string) *artifact.Item {
	it := &artifact.Item{ID: id}
	if len(insertBefore) > 0 {
		it.InsertBeforeID = insertBefore[0]
	}
	return it
}

func TestItemListsAppendsWithoutInsertBefore(t *testing.T) {
	target := []*artifact.Item{item("id1")}
	source := []*artifact.Item{item("id2")}

	result, err := ItemLists(target, source, "page")
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "id1", result[0].ID)
	assert.Equal(t, "id2", result[1].ID)
}

func TestItemListsInsertsBeforeMatchingID(t *testing.T) {
	target := []*artifact.Item{item("id1"), item("id2")}
	source := []*artifact.Item{item("idX", "id2")}

	result, err := ItemLists(target, source, "page")
	require.NoError(t, err)
	ids := []string{result[0].ID, result[1].ID, result[2].ID}
	assert.Equal(t, []string{"id1", "idX", "id2"}, ids)
}

func TestItemListsFailsOnMissingInsertBeforeID(t *testing.T) {
	target := []*artifact.Item{item("id1")}
	source := []*artifact.Item{item("idX", "idZ")}

	_, err := ItemLists(target, source, "page")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingInsertBefore)
}
