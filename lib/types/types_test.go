package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityTypes(t *testing.T) {
	all := EntityTypes()
	assert.Len(t, all, 49)

	seen := make(map[string]bool, len(all))
	for _, typ := range all {
		assert.True(t, typ.Valid())
		name := typ.String()
		assert.NotEqual(t, "unknown", name)
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true

		parsed, ok := ParseEntityType(name)
		require.True(t, ok)
		assert.Equal(t, typ, parsed)
	}

	assert.False(t, EntityUnknown.Valid())
	assert.Equal(t, "unknown", EntityUnknown.String())
	assert.Equal(t, "unknown", EntityType(200).String())

	_, ok := ParseEntityType("Wiki")
	assert.False(t, ok)
}

func TestEntityTypeJSON(t *testing.T) {
	data, err := json.Marshal(EntityTimeEntry)
	require.NoError(t, err)
	assert.Equal(t, `"TimeEntry"`, string(data))

	var typ EntityType
	require.NoError(t, json.Unmarshal(data, &typ))
	assert.Equal(t, EntityTimeEntry, typ)

	assert.Error(t, json.Unmarshal([]byte(`"Ticket"`), &typ))
	assert.Error(t, json.Unmarshal([]byte(`5`), &typ))
}

func TestPagedResults(t *testing.T) {
	page := PagedResults[int]{Items: []int{1, 2, 3}, TotalItems: 10, Offset: 3, Limit: 3}
	assert.Equal(t, 3, page.PageSize())
	assert.Equal(t, 2, page.CurrentPage())
	assert.Equal(t, 4, page.TotalPages())
	assert.True(t, page.HasMore())

	last := PagedResults[int]{Items: []int{10}, TotalItems: 10, Offset: 9, Limit: 3}
	assert.Equal(t, 4, last.CurrentPage())
	assert.False(t, last.HasMore())

	// no limit sent: the page size is the item count
	unlimited := PagedResults[int]{Items: []int{1, 2}, TotalItems: 2}
	assert.Equal(t, 2, unlimited.PageSize())
	assert.Equal(t, 1, unlimited.TotalPages())
	assert.False(t, unlimited.HasMore())

	var empty PagedResults[int]
	assert.Equal(t, 1, empty.CurrentPage())
	assert.Equal(t, 0, empty.TotalPages())
	assert.False(t, empty.HasMore())
}

func TestIdentifiableName(t *testing.T) {
	assert.Equal(t, "#5 Jane Doe", NewIdentifiableName(5, "Jane Doe").String())
	assert.Equal(t, "#7", NewReference(7).String())
	assert.Equal(t, *NewIdentifiableName(1, "a"), IdentifiableName{ID: 1, Name: "a"})
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "active", ProjectStatusActive.String())
	assert.Equal(t, "archived", ProjectStatusArchived.String())
	assert.Equal(t, "none", ProjectStatus(3).String())
	assert.Equal(t, "locked", UserStatusLocked.String())
	assert.Equal(t, "none", UserStatusNone.String())
}
