package cart

import "github.com/ghostshadow526/foodiesandstories/internal/domain"

// Actions mirror the UI intents that mutate a cart. Reduce is a pure function
// so the transition semantics stay testable without a store or storage.

type actionType int

const (
	actionAdd actionType = iota
	actionRemove
	actionUpdateQuantity
	actionClear
)

type action struct {
	typ       actionType
	line      domain.CartLine
	productID string
	quantity  int
}

// Reduce applies one action to the line slice and returns the next state.
// The input slice is never mutated; callers may hold references to old states.
func reduce(lines []domain.CartLine, a action) []domain.CartLine {
	switch a.typ {
	case actionAdd:
		for i, l := range lines {
			if l.ProductID == a.line.ProductID {
				// Merge by incrementing, never by duplicating the line.
				next := copyLines(lines)
				next[i].Quantity += a.line.Quantity
				return next
			}
		}
		next := copyLines(lines)
		return append(next, a.line)

	case actionRemove:
		return removeLine(lines, a.productID)

	case actionUpdateQuantity:
		// A quantity at or below zero removes the line entirely.
		if a.quantity <= 0 {
			return removeLine(lines, a.productID)
		}
		next := copyLines(lines)
		for i := range next {
			if next[i].ProductID == a.productID {
				next[i].Quantity = a.quantity
				return next
			}
		}
		return next // unknown product id is a no-op

	case actionClear:
		return []domain.CartLine{}
	}
	return lines
}

func removeLine(lines []domain.CartLine, productID string) []domain.CartLine {
	next := make([]domain.CartLine, 0, len(lines))
	for _, l := range lines {
		if l.ProductID != productID {
			next = append(next, l)
		}
	}
	return next
}

func copyLines(lines []domain.CartLine) []domain.CartLine {
	next := make([]domain.CartLine, len(lines))
	copy(next, lines)
	return next
}
