package roster

import (
	"testing"

	"github.com/pikard86/ai-squad-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoster_AddAndList(t *testing.T) {
	r := New()
	require.NoError(t, r.Add(types.Candidate{ID: "p1", Name: "One"}))
	require.NoError(t, r.Add(types.Candidate{ID: "p2", Name: "Two"}))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "p1", list[0].ID)
	assert.Equal(t, "p2", list[1].ID)
	assert.Equal(t, 2, r.Len())
}

func TestRoster_AddRejectsDuplicateAndEmptyID(t *testing.T) {
	r := New()
	require.NoError(t, r.Add(types.Candidate{ID: "p1"}))
	assert.ErrorIs(t, r.Add(types.Candidate{ID: "p1"}), ErrDuplicate)
	assert.Error(t, r.Add(types.Candidate{}))
	assert.Equal(t, 1, r.Len())
}

func TestRoster_UpdatePreservesOrder(t *testing.T) {
	r := New()
	require.NoError(t, r.Add(types.Candidate{ID: "p1", Name: "Old", Overall: 60}))
	require.NoError(t, r.Add(types.Candidate{ID: "p2"}))

	require.NoError(t, r.Update(types.Candidate{ID: "p1", Name: "New", Overall: 75}))
	c, ok := r.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "New", c.Name)
	assert.Equal(t, 75, c.Overall)
	assert.Equal(t, "p1", r.List()[0].ID)

	assert.ErrorIs(t, r.Update(types.Candidate{ID: "ghost"}), ErrNotFound)
}

func TestRoster_SetImage(t *testing.T) {
	r := New()
	require.NoError(t, r.Add(types.Candidate{ID: "p1"}))
	require.NoError(t, r.SetImage("p1", "data:image/png;base64,AAAA"))

	c, _ := r.Get("p1")
	assert.Equal(t, "data:image/png;base64,AAAA", c.ImageURL)
	assert.ErrorIs(t, r.SetImage("p9", "x"), ErrNotFound)
}

func TestRoster_GetReturnsCopy(t *testing.T) {
	r := New()
	require.NoError(t, r.Add(types.Candidate{ID: "p1", Attributes: []types.Attribute{{Label: "CODE", Value: 50}}}))

	c, _ := r.Get("p1")
	c.Attributes[0].Value = 99

	again, _ := r.Get("p1")
	assert.Equal(t, 50, again.Attributes[0].Value)
	assert.True(t, r.Has("p1"))
	assert.False(t, r.Has("p2"))
}
