// Package booking implements the reservation checkout flow: a cart of menu
// selections per device, price totals, and submission as guest or
// authenticated user.
package booking

import "tablenow/models"

// ServiceCharge is the fixed charge (DKK) added to every reservation total.
const ServiceCharge = 150

// Cart maps menu IDs to selections. Cart operations are pure: they return a
// new mapping and never mutate their input.
type Cart map[int64]models.MenuSelection

func (c Cart) clone() Cart {
	next := make(Cart, len(c))
	for id, sel := range c {
		next[id] = sel
	}
	return next
}

// Toggle flips a menu item's cart membership. Adding defaults the quantity
// to 1; toggling an existing entry removes it.
func Toggle(cart Cart, menu models.Menu) Cart {
	next := cart.clone()
	if _, selected := next[menu.ID]; selected {
		delete(next, menu.ID)
		return next
	}
	next[menu.ID] = models.MenuSelection{
		MenuID:   menu.ID,
		Name:     menu.Name,
		Type:     menu.Type,
		Image:    menu.Image,
		Price:    menu.Price,
		Quantity: 1,
	}
	return next
}

// AdjustQuantity adds increment to an entry's quantity, clamping at a
// minimum of 1. Unknown menu IDs are ignored.
func AdjustQuantity(cart Cart, menuID int64, increment int) Cart {
	sel, ok := cart[menuID]
	if !ok {
		return cart
	}
	next := cart.clone()
	sel.Quantity += increment
	if sel.Quantity < 1 {
		sel.Quantity = 1
	}
	next[menuID] = sel
	return next
}

// Remove deletes a cart entry.
func Remove(cart Cart, menuID int64) Cart {
	if _, ok := cart[menuID]; !ok {
		return cart
	}
	next := cart.clone()
	delete(next, menuID)
	return next
}

// TotalPrice recomputes the menu subtotal from current cart state. The
// service charge is added only at submission.
func TotalPrice(cart Cart) float64 {
	var total float64
	for _, sel := range cart {
		total += sel.Price * float64(sel.Quantity)
	}
	return total
}
