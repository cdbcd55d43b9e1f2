package client

import (
	"fmt"
	"net/url"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

// Create sends a booking request. Pass an Idempotency-Key header through
// idempotencyKey to make retries safe; empty string skips the header.
func (c *BookingClient) Create(body any, idempotencyKey string) (*Response, error) {
	if idempotencyKey == "" {
		return c.httpClient.POST("/api/v1/bookings", body)
	}
	return c.httpClient.POSTWithHeaders("/api/v1/bookings", body, map[string]string{
		"Idempotency-Key": idempotencyKey,
	})
}

func (c *BookingClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/bookings?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *BookingClient) GetByID(id string) (*Response, error) {
	return c.httpClient.GET("/api/v1/bookings/id/" + url.PathEscape(id))
}

func (c *BookingClient) Search(resourceID, from, to string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	q.Set("resource_id", resourceID)
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))
	return c.httpClient.GET("/api/v1/bookings/search?" + q.Encode())
}

func (c *BookingClient) Cancel(id string) (*Response, error) {
	return c.httpClient.POST("/api/v1/bookings/id/"+url.PathEscape(id)+"/cancel", nil)
}
