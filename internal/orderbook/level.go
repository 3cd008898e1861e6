package orderbook

import (
	"container/list"

	"github.com/google/btree"
)

// resting is an order sitting in a price level. admitted is the book's
// admission counter at the time it was added.
type resting struct {
	Order
	admitted uint64
}

// priceLevel owns the resting orders at one price in arrival order.
// A level stored in an index is never empty.
type priceLevel struct {
	price       float64
	orders      *list.List // of *resting
	totalVolume int64
}

func newPriceLevel(price float64) *priceLevel {
	return &priceLevel{price: price, orders: list.New()}
}

func (l *priceLevel) push(o *resting) *list.Element {
	l.totalVolume += o.Quantity
	return l.orders.PushBack(o)
}

func (l *priceLevel) head() (*resting, *list.Element) {
	front := l.orders.Front()
	if front == nil {
		return nil, nil
	}
	return front.Value.(*resting), front
}

// remove unlinks e. The element is a position token: list.Remove is a no-op
// for an element that no longer belongs to this level.
func (l *priceLevel) remove(e *list.Element) {
	before := l.orders.Len()
	o := l.orders.Remove(e).(*resting)
	if l.orders.Len() < before {
		l.totalVolume -= o.Quantity
	}
}

func (l *priceLevel) fill(qty int64) {
	l.totalVolume -= qty
}

func (l *priceLevel) empty() bool {
	return l.orders.Len() == 0
}

func (l *priceLevel) view() Level {
	return Level{Price: l.price, TotalVolume: l.totalVolume, OrderCount: l.orders.Len()}
}

const btreeDegree = 32

// priceLevelIndex is the authoritative price -> level mapping of one side.
// Iteration order is best price first: descending for buys, ascending for sells.
type priceLevelIndex struct {
	side Side
	tree *btree.BTreeG[*priceLevel]
}

func newPriceLevelIndex(side Side) *priceLevelIndex {
	less := func(a, b *priceLevel) bool { return a.price < b.price }
	if side == Buy {
		less = func(a, b *priceLevel) bool { return a.price > b.price }
	}
	return &priceLevelIndex{side: side, tree: btree.NewG(btreeDegree, less)}
}

func (ix *priceLevelIndex) get(price float64) (*priceLevel, bool) {
	return ix.tree.Get(&priceLevel{price: price})
}

func (ix *priceLevelIndex) has(price float64) bool {
	return ix.tree.Has(&priceLevel{price: price})
}

func (ix *priceLevelIndex) getOrCreate(price float64) *priceLevel {
	if l, ok := ix.get(price); ok {
		return l
	}
	l := newPriceLevel(price)
	ix.tree.ReplaceOrInsert(l)
	return l
}

func (ix *priceLevelIndex) delete(price float64) {
	ix.tree.Delete(&priceLevel{price: price})
}

func (ix *priceLevelIndex) len() int {
	return ix.tree.Len()
}

func (ix *priceLevelIndex) best() (*priceLevel, bool) {
	return ix.tree.Min()
}

// each visits levels best price first until fn returns false.
func (ix *priceLevelIndex) each(fn func(*priceLevel) bool) {
	ix.tree.Ascend(btree.ItemIteratorG[*priceLevel](fn))
}
