package cart

import (
	"testing"

	"github.com/ghostshadow526/foodiesandstories/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id string, price float64, qty int) domain.CartLine {
	return domain.CartLine{ProductID: id, Name: "book-" + id, Price: price, Quantity: qty, Slug: "slug-" + id}
}

func TestReduce_AddNewLine(t *testing.T) {
	state := reduce(nil, action{typ: actionAdd, line: line("a", 1000, 1)})

	require.Len(t, state, 1)
	assert.Equal(t, "a", state[0].ProductID)
	assert.Equal(t, 1, state[0].Quantity)
}

func TestReduce_AddSameProductMergesQuantity(t *testing.T) {
	state := reduce(nil, action{typ: actionAdd, line: line("a", 1000, 1)})
	state = reduce(state, action{typ: actionAdd, line: line("a", 1000, 2)})

	require.Len(t, state, 1, "add must merge, never duplicate the line")
	assert.Equal(t, 3, state[0].Quantity)
	assert.Equal(t, 3000.0, domain.CartTotal(state))
}

func TestReduce_AddPreservesInsertionOrder(t *testing.T) {
	state := reduce(nil, action{typ: actionAdd, line: line("a", 500, 1)})
	state = reduce(state, action{typ: actionAdd, line: line("b", 1500, 1)})
	state = reduce(state, action{typ: actionAdd, line: line("a", 500, 1)})

	require.Len(t, state, 2)
	assert.Equal(t, "a", state[0].ProductID)
	assert.Equal(t, "b", state[1].ProductID)
}

func TestReduce_DoubleAddIsIdempotentMerge(t *testing.T) {
	state := reduce(nil, action{typ: actionAdd, line: line("a", 100, 1)})
	state = reduce(state, action{typ: actionAdd, line: line("a", 100, 1)})

	require.Len(t, state, 1)
	assert.Equal(t, 2, state[0].Quantity)
}

func TestReduce_RemoveExisting(t *testing.T) {
	state := []domain.CartLine{line("a", 100, 1), line("b", 200, 1)}
	state = reduce(state, action{typ: actionRemove, productID: "a"})

	require.Len(t, state, 1)
	assert.Equal(t, "b", state[0].ProductID)
}

func TestReduce_RemoveAbsentIsNoOp(t *testing.T) {
	state := []domain.CartLine{line("a", 100, 1)}
	state = reduce(state, action{typ: actionRemove, productID: "zzz"})

	require.Len(t, state, 1)
	assert.Equal(t, "a", state[0].ProductID)
}

func TestReduce_UpdateQuantitySetsAbsoluteValue(t *testing.T) {
	state := []domain.CartLine{line("a", 100, 5)}
	state = reduce(state, action{typ: actionUpdateQuantity, productID: "a", quantity: 2})

	require.Len(t, state, 1)
	assert.Equal(t, 2, state[0].Quantity, "update is an absolute set, not a delta")
}

func TestReduce_UpdateQuantityZeroRemovesLine(t *testing.T) {
	state := []domain.CartLine{line("a", 100, 5)}
	state = reduce(state, action{typ: actionUpdateQuantity, productID: "a", quantity: 0})

	assert.Empty(t, state)
	assert.Equal(t, 0.0, domain.CartTotal(state))
}

func TestReduce_UpdateQuantityNegativeRemovesLine(t *testing.T) {
	state := []domain.CartLine{line("a", 100, 5), line("b", 200, 1)}
	state = reduce(state, action{typ: actionUpdateQuantity, productID: "a", quantity: -3})

	require.Len(t, state, 1)
	assert.Equal(t, "b", state[0].ProductID)
}

func TestReduce_UpdateQuantityAbsentIsNoOp(t *testing.T) {
	state := []domain.CartLine{line("a", 100, 5)}
	state = reduce(state, action{typ: actionUpdateQuantity, productID: "zzz", quantity: 3})

	require.Len(t, state, 1)
	assert.Equal(t, 5, state[0].Quantity)
}

func TestReduce_Clear(t *testing.T) {
	state := []domain.CartLine{line("a", 100, 5), line("b", 200, 1)}
	state = reduce(state, action{typ: actionClear})

	assert.Empty(t, state)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	original := []domain.CartLine{line("a", 100, 1)}
	_ = reduce(original, action{typ: actionAdd, line: line("a", 100, 4)})

	assert.Equal(t, 1, original[0].Quantity, "previous state must stay untouched")
}

func TestCartTotal_RecomputedFromLines(t *testing.T) {
	state := []domain.CartLine{line("a", 500, 2), line("b", 1500, 1)}
	assert.Equal(t, 2500.0, domain.CartTotal(state))

	state = reduce(state, action{typ: actionUpdateQuantity, productID: "a", quantity: 3})
	assert.Equal(t, 3000.0, domain.CartTotal(state))
}
