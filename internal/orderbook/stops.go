package orderbook

// stopStaging holds stop orders of one side that are not yet eligible to
// trade, in arrival order.
type stopStaging struct {
	orders []Order
}

func (s *stopStaging) add(o Order) {
	s.orders = append(s.orders, o)
}

func (s *stopStaging) contains(id int64) bool {
	for _, o := range s.orders {
		if o.ID == id {
			return true
		}
	}
	return false
}

func (s *stopStaging) remove(id int64) bool {
	for i, o := range s.orders {
		if o.ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return true
		}
	}
	return false
}

// take removes and returns the staged order at position i.
func (s *stopStaging) take(i int) Order {
	o := s.orders[i]
	s.orders = append(s.orders[:i], s.orders[i+1:]...)
	return o
}

func (s *stopStaging) snapshot() []Order {
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}
