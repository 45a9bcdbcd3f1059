package backend

import (
	"context"
	"fmt"
	"net/http"

	"tablenow/models"
)

// ListBookings returns the authenticated user's booking history.
func (c *Client) ListBookings(ctx context.Context, token string) ([]models.HistoryBooking, error) {
	var bookings []models.HistoryBooking
	if err := c.do(ctx, http.MethodGet, "user-bookings", nil, token, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CreateBooking submits a reservation for the authenticated user.
func (c *Client) CreateBooking(ctx context.Context, token string, booking models.Booking) error {
	return c.do(ctx, http.MethodPost, "table-booking", nil, token, booking, nil)
}

// DeleteBooking clears a single booking from the user's history.
func (c *Client) DeleteBooking(ctx context.Context, token string, bookingID int64) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	path := fmt.Sprintf("delete-booking/%d", bookingID)
	if err := c.do(ctx, http.MethodDelete, path, nil, token, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// DeleteAllBookings clears the user's entire booking history.
func (c *Client) DeleteAllBookings(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "delete-all-bookings", nil, token, nil, nil)
}

// SubmitRating posts a review for a past booking.
func (c *Client) SubmitRating(ctx context.Context, token string, rating models.Rating) error {
	return c.do(ctx, http.MethodPost, "hotel-rating", nil, token, rating, nil)
}
