package cart

import (
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// Cart holds at most one line per menu item, in the order items were first added.
//
//	c, _ := cart.Cart{}.Add(pizza)
//	c, _ = c.Increment(pizza.MenuItemID)
//	total, _ := c.Total() // 2 × pizza price
type Cart struct {
	lines []Line
}

// New builds a cart from lines, merging lines that refer to the same menu item.
func New(lines ...Line) (Cart, error) {
	c := Cart{}
	for _, l := range lines {
		var err error
		if c, err = c.Add(l); err != nil {
			return Cart{}, err
		}
	}
	return c, nil
}

// Add appends line, or raises the quantity of the existing line for the same menu item.
// A blank category becomes kernel.DefaultCategory. A merged line may not exceed
// kernel.MaxQuantity.
func (c Cart) Add(line Line) (Cart, error) {
	if err := line.Validate(); err != nil {
		return c, err
	}
	line.Category = line.categoryOrDefault()

	lines := c.Lines()
	if i := c.indexOf(line.MenuItemID); i >= 0 {
		merged := lines[i]
		merged.Quantity += line.Quantity
		if err := merged.Validate(); err != nil {
			return c, err
		}
		lines[i] = merged
		return Cart{lines: lines}, nil
	}
	return Cart{lines: append(lines, line)}, nil
}

// Increment raises the quantity of the line for menuItemID by one.
func (c Cart) Increment(menuItemID kernel.UUID) (Cart, error) {
	i := c.indexOf(menuItemID)
	if i < 0 {
		return c, errs.NewObjectNotFoundError("cart line", menuItemID.String())
	}
	lines := c.Lines()
	lines[i].Quantity++
	if err := lines[i].Validate(); err != nil {
		return c, err
	}
	return Cart{lines: lines}, nil
}

// Decrement lowers the quantity of the line for menuItemID by one and drops the line
// once its quantity reaches zero.
func (c Cart) Decrement(menuItemID kernel.UUID) (Cart, error) {
	i := c.indexOf(menuItemID)
	if i < 0 {
		return c, errs.NewObjectNotFoundError("cart line", menuItemID.String())
	}
	lines := c.Lines()
	if lines[i].Quantity <= 1 {
		return Cart{lines: append(lines[:i], lines[i+1:]...)}, nil
	}
	lines[i].Quantity--
	return Cart{lines: lines}, nil
}

// Lines returns a copy of the cart lines.
func (c Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c Cart) Total() (kernel.Money, error) {
	return Total(c.lines)
}

// Count is the number of units in the cart.
func (c Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c Cart) indexOf(menuItemID kernel.UUID) int {
	for i, l := range c.lines {
		if l.MenuItemID.IsEqual(menuItemID) {
			return i
		}
	}
	return -1
}
