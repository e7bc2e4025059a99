package client

import (
	"context"
	"fmt"
	"net/url"
	"roombook/pkg/model"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingClient) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	return c.CreateIdempotent(ctx, req, "")
}

// CreateIdempotent retries safely: a repeated key replays the first result.
func (c *BookingClient) CreateIdempotent(ctx context.Context, req *model.BookingRequest, key string) (*model.Booking, error) {
	var headers map[string]string
	if key != "" {
		headers = map[string]string{"Idempotency-Key": key}
	}
	resp, err := c.httpClient.POSTWithHeaders(ctx, "/api/v1/bookings", req, headers)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	var booking model.Booking
	if err := resp.DecodeData(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BookingClient) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/bookings/id/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	var booking model.Booking
	if err := resp.DecodeData(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BookingClient) List(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	resp, err := c.httpClient.GET(ctx, fmt.Sprintf("/api/v1/bookings?limit=%d&offset=%d", limit, offset))
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	var bookings []*model.Booking
	if err := resp.DecodeData(&bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingClient) Cancel(ctx context.Context, id string) (*model.CancelResult, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/bookings/id/"+url.PathEscape(id)+"/cancel", nil)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	var result model.CancelResult
	if err := resp.DecodeData(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

type RoomClient struct {
	httpClient *HttpClient
}

func NewRoomClient(baseURL string) *RoomClient {
	return &RoomClient{httpClient: NewHttpClient(baseURL)}
}

func (c *RoomClient) List(ctx context.Context) ([]*model.Room, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/rooms")
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	var rooms []*model.Room
	if err := resp.DecodeData(&rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *RoomClient) Seed(ctx context.Context) (*model.SeedResult, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/rooms/seed", nil)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	var result model.SeedResult
	if err := resp.DecodeData(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Usage fetches per-room analytics for the inclusive date range (YYYY-MM-DD).
func (c *RoomClient) Usage(ctx context.Context, from, to string) ([]*model.RoomUsage, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	resp, err := c.httpClient.GET(ctx, "/api/v1/analytics?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	var usage []*model.RoomUsage
	if err := resp.DecodeData(&usage); err != nil {
		return nil, err
	}
	return usage, nil
}
