package api

import (
	"context"
	"fmt"

	"salonadmin/internal/models"
)

func (c *Client) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := c.get(ctx, "/api/v1/services", nil, &services, "services_list"); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *Client) GetService(ctx context.Context, id int64) (*models.Service, error) {
	var svc models.Service
	if err := c.get(ctx, fmt.Sprintf("/api/v1/services/%d", id), nil, &svc, "services_get"); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (c *Client) CreateService(ctx context.Context, req models.ServiceInput) (*models.Service, error) {
	var svc models.Service
	if err := c.post(ctx, "/api/v1/admin/services", req, &svc, "services_create"); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (c *Client) UpdateService(ctx context.Context, id int64, req models.ServiceInput) (*models.Service, error) {
	var svc models.Service
	if err := c.put(ctx, fmt.Sprintf("/api/v1/admin/services/%d", id), req, &svc, "services_update"); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (c *Client) DeleteService(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/v1/admin/services/%d", id), "services_delete")
}

func (c *Client) ListStylists(ctx context.Context) ([]models.Stylist, error) {
	var stylists []models.Stylist
	if err := c.get(ctx, "/api/v1/stylists", nil, &stylists, "stylists_list"); err != nil {
		return nil, err
	}
	return stylists, nil
}

func (c *Client) GetStylist(ctx context.Context, id int64) (*models.Stylist, error) {
	var stylist models.Stylist
	if err := c.get(ctx, fmt.Sprintf("/api/v1/stylists/%d", id), nil, &stylist, "stylists_get"); err != nil {
		return nil, err
	}
	return &stylist, nil
}

func (c *Client) CreateStylist(ctx context.Context, req models.StylistInput) (*models.Stylist, error) {
	var stylist models.Stylist
	if err := c.post(ctx, "/api/v1/admin/stylists", req, &stylist, "stylists_create"); err != nil {
		return nil, err
	}
	return &stylist, nil
}

func (c *Client) UpdateStylist(ctx context.Context, id int64, req models.StylistInput) (*models.Stylist, error) {
	var stylist models.Stylist
	if err := c.put(ctx, fmt.Sprintf("/api/v1/admin/stylists/%d", id), req, &stylist, "stylists_update"); err != nil {
		return nil, err
	}
	return &stylist, nil
}

func (c *Client) DeleteStylist(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/v1/admin/stylists/%d", id), "stylists_delete")
}

func (c *Client) ListSchedules(ctx context.Context, stylistID int64) ([]models.StylistSchedule, error) {
	var schedules []models.StylistSchedule
	path := fmt.Sprintf("/api/v1/stylists/%d/schedules", stylistID)
	if err := c.get(ctx, path, nil, &schedules, "schedules_list"); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (c *Client) CreateSchedule(ctx context.Context, stylistID int64, req models.ScheduleInput) (*models.StylistSchedule, error) {
	var schedule models.StylistSchedule
	path := fmt.Sprintf("/api/v1/admin/stylists/%d/schedules", stylistID)
	if err := c.post(ctx, path, req, &schedule, "schedules_create"); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (c *Client) DeleteSchedule(ctx context.Context, scheduleID int64) error {
	path := fmt.Sprintf("/api/v1/admin/stylists/schedules/%d", scheduleID)
	return c.delete(ctx, path, "schedules_delete")
}
