package cart

import (
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mytheresa/storefront/models"
)

// ProductFinder resolves catalog products by id.
type ProductFinder interface {
	Find(id int) (models.Product, bool)
}

// Store holds the cart lines and the badge counter.
// The counter always equals the sum of line quantities.
type Store struct {
	catalog ProductFinder

	mu    sync.RWMutex
	lines []models.CartLine
	count int
}

func NewStore(catalog ProductFinder) *Store {
	return &Store{
		catalog: catalog,
	}
}

// AddItem puts one unit of the product in the cart. Unknown products are
// ignored.
func (s *Store) AddItem(productID int) bool {
	product, ok := s.catalog.Find(productID)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		s.lines[i].Quantity++
	} else {
		s.lines = append(s.lines, models.CartLine{Product: product, Quantity: 1})
	}
	s.count++
	return true
}

func (s *Store) IncrementLine(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return false
	}
	s.lines[i].Quantity++
	s.count++
	return true
}

// DecrementLine lowers the quantity by one, never below 1.
func (s *Store) DecrementLine(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 || s.lines[i].Quantity <= 1 {
		return false
	}
	s.lines[i].Quantity--
	s.count--
	return true
}

func (s *Store) RemoveLine(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return false
	}
	s.count -= s.lines[i].Quantity
	s.lines = slices.Delete(s.lines, i, i+1)
	return true
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lines)
}

// Count is the badge value.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines) == 0
}

// Sum returns the total of price times quantity over all lines.
func (s *Store) Sum() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := decimal.Zero
	for _, l := range s.lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

// Total returns the checkout label, e.g. "Total: $25.50".
func (s *Store) Total() string {
	return FormatTotal(s.Sum())
}

func FormatTotal(sum decimal.Decimal) string {
	return "Total: $" + sum.StringFixed(2)
}

func (s *Store) indexOf(productID int) int {
	return slices.IndexFunc(s.lines, func(l models.CartLine) bool { return l.ID == productID })
}
