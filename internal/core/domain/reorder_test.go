// internal/core/domain/reorder_test.go
package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsvendas/motostock/internal/core/domain"
)

func TestMoveItem(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		expected []string
	}{
		{name: "forward", from: 0, to: 2, expected: []string{"B", "C", "A", "D"}},
		{name: "backward", from: 3, to: 0, expected: []string{"D", "A", "B", "C"}},
		{name: "same_position", from: 1, to: 1, expected: []string{"A", "B", "C", "D"}},
		{name: "to_last", from: 1, to: 3, expected: []string{"A", "C", "D", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []string{"A", "B", "C", "D"}
			out, err := domain.MoveItem(in, tt.from, tt.to)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, out); diff != "" {
				t.Errorf("MoveItem mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, []string{"A", "B", "C", "D"}, in, "input must not change")
		})
	}
}

func TestMoveItem_AllPairsKeepRelativeOrder(t *testing.T) {
	in := []int{0, 1, 2, 3, 4, 5}
	for from := range in {
		for to := range in {
			out, err := domain.MoveItem(in, from, to)
			require.NoError(t, err)
			require.Len(t, out, len(in))
			assert.Equal(t, in[from], out[to])

			var restIn, restOut []int
			for i, v := range in {
				if i != from {
					restIn = append(restIn, v)
				}
			}
			for i, v := range out {
				if i != to {
					restOut = append(restOut, v)
				}
			}
			assert.Equal(t, restIn, restOut, "from=%d to=%d", from, to)
		}
	}
}

func TestMoveItem_InvalidIndex(t *testing.T) {
	in := []string{"A", "B"}
	for _, pair := range [][2]int{{-1, 0}, {0, 2}, {2, 0}, {0, -1}} {
		_, err := domain.MoveItem(in, pair[0], pair[1])
		assert.ErrorIs(t, err, domain.ErrInvalidIndex)
	}

	_, err := domain.MoveItem([]string{}, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidIndex)
}

func TestAssignOrder(t *testing.T) {
	items := []domain.Motorcycle{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}
	got := domain.AssignOrder(items)
	require.Len(t, got, 3)
	for i, a := range got {
		assert.Equal(t, items[i].ID, a.ID)
		assert.Equal(t, i, a.DisplayOrder)
	}
}
