package client

import (
	"fmt"
	"net/url"
)

// AvailabilityClient is the thin HTTP client collaborators use against the
// availability service.
type AvailabilityClient struct {
	httpClient *HttpClient
}

func NewAvailabilityClient(baseURL string) *AvailabilityClient {
	return &AvailabilityClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *AvailabilityClient) Resolve(locationID, date, tz string) (*Response, error) {
	q := url.Values{}
	q.Set("location_id", locationID)
	q.Set("date", date)
	if tz != "" {
		q.Set("tz", tz)
	}
	return c.httpClient.GET("/api/v1/availability?" + q.Encode())
}

func (c *AvailabilityClient) ResolveRange(locationID, from, to, tz string) (*Response, error) {
	q := url.Values{}
	q.Set("location_id", locationID)
	q.Set("from", from)
	q.Set("to", to)
	if tz != "" {
		q.Set("tz", tz)
	}
	return c.httpClient.GET("/api/v1/availability/range?" + q.Encode())
}

func (c *AvailabilityClient) UpsertHours(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/hours", body)
}

func (c *AvailabilityClient) ListHours(locationID string) (*Response, error) {
	return c.httpClient.GET("/api/v1/hours?location_id=" + url.QueryEscape(locationID))
}

func (c *AvailabilityClient) AddHoursWindow(locationID, weekday string, body any) (*Response, error) {
	path := fmt.Sprintf("/api/v1/hours/%s/%s/windows", url.PathEscape(locationID), url.PathEscape(weekday))
	return c.httpClient.POST(path, body)
}

func (c *AvailabilityClient) CreateOverride(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/overrides", body)
}

func (c *AvailabilityClient) ListOverrides(locationID, from, to string) (*Response, error) {
	q := url.Values{}
	q.Set("location_id", locationID)
	q.Set("from", from)
	q.Set("to", to)
	return c.httpClient.GET("/api/v1/overrides?" + q.Encode())
}

func (c *AvailabilityClient) UpdateOverride(id string, body any) (*Response, error) {
	return c.httpClient.PATCH("/api/v1/overrides/id/"+url.PathEscape(id), body)
}

func (c *AvailabilityClient) DeleteOverride(id string) (*Response, error) {
	return c.httpClient.DELETE("/api/v1/overrides/id/" + url.PathEscape(id))
}
