package orderbook

import "container/heap"

// bestPriceCache is a priority queue of candidate best prices for one side.
//
// Entries may go stale: cancels and fills remove levels from the index
// without touching the cache. Every read goes through best, which checks the
// top entry against the index and pops it until a backed price surfaces.
// Duplicate pushes are allowed. When stale entries pile up the heap is
// rebuilt from the index.
type bestPriceCache struct {
	prices priceHeap
}

func newBestPriceCache(side Side) *bestPriceCache {
	return &bestPriceCache{prices: priceHeap{maxFirst: side == Buy}}
}

func (c *bestPriceCache) push(price float64) {
	heap.Push(&c.prices, price)
}

// best returns the best price still present in ix.
func (c *bestPriceCache) best(ix *priceLevelIndex) (float64, bool) {
	for c.prices.Len() > 0 {
		top := c.prices.values[0]
		if ix.has(top) {
			return top, true
		}
		heap.Pop(&c.prices)
	}
	return 0, false
}

// compact rebuilds the heap from ix once stale entries outnumber live levels.
func (c *bestPriceCache) compact(ix *priceLevelIndex) {
	if c.prices.Len() <= 2*ix.len()+64 {
		return
	}
	values := make([]float64, 0, ix.len())
	ix.each(func(l *priceLevel) bool {
		values = append(values, l.price)
		return true
	})
	c.prices.values = values
	heap.Init(&c.prices)
}

func (c *bestPriceCache) len() int {
	return c.prices.Len()
}

type priceHeap struct {
	values   []float64
	maxFirst bool
}

func (h priceHeap) Len() int { return len(h.values) }

func (h priceHeap) Less(i, j int) bool {
	if h.maxFirst {
		return h.values[i] > h.values[j]
	}
	return h.values[i] < h.values[j]
}

func (h priceHeap) Swap(i, j int) { h.values[i], h.values[j] = h.values[j], h.values[i] }

func (h *priceHeap) Push(x any) { h.values = append(h.values, x.(float64)) }

func (h *priceHeap) Pop() any {
	old := h.values
	n := len(old)
	v := old[n-1]
	h.values = old[:n-1]
	return v
}
