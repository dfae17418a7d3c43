package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) ListReminders(ctx context.Context, filter ReminderQuery) ([]Reminder, error) {
	q := url.Values{}
	if filter.Type != "" {
		q.Set("type", filter.Type.String())
	}
	if !filter.PlantID.IsNil() {
		q.Set("plantId", filter.PlantID.String())
	}
	if filter.Query != "" {
		q.Set("q", filter.Query)
	}
	var out []Reminder
	err := c.do(ctx, http.MethodGet, withQuery("/care-reminders", q), nil, &out)
	return out, err
}

func (c *Client) OverdueReminders(ctx context.Context) ([]Reminder, error) {
	var out []Reminder
	err := c.do(ctx, http.MethodGet, "/care-reminders/overdue", nil, &out)
	return out, err
}

// UpcomingReminders lists reminders due within days; zero uses the server
// default.
func (c *Client) UpcomingReminders(ctx context.Context, days int) ([]Reminder, error) {
	q := url.Values{}
	if days != 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var out []Reminder
	err := c.do(ctx, http.MethodGet, withQuery("/care-reminders/upcoming", q), nil, &out)
	return out, err
}

func (c *Client) GetReminder(ctx context.Context, reminderID string) (*Reminder, error) {
	var out Reminder
	if err := c.do(ctx, http.MethodGet, "/care-reminders/"+escape(reminderID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateReminder(ctx context.Context, in NewReminder) (*Reminder, error) {
	var out Reminder
	if err := c.do(ctx, http.MethodPost, "/care-reminders", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateReminder(ctx context.Context, reminderID string, patch ReminderPatch) (*Reminder, error) {
	var out Reminder
	if err := c.do(ctx, http.MethodPatch, "/care-reminders/"+escape(reminderID), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkReminderDone records completion today and returns the rescheduled
// reminder.
func (c *Client) MarkReminderDone(ctx context.Context, reminderID string) (*Reminder, error) {
	var out Reminder
	if err := c.do(ctx, http.MethodPatch, "/care-reminders/"+escape(reminderID)+"/mark-done", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteReminder(ctx context.Context, reminderID string) error {
	return c.do(ctx, http.MethodDelete, "/care-reminders/"+escape(reminderID), nil, nil)
}

func (c *Client) ListCareLogs(ctx context.Context, filter CareLogQuery) ([]CareLog, error) {
	q := url.Values{}
	if !filter.PlantID.IsNil() {
		q.Set("plantId", filter.PlantID.String())
	}
	if filter.Type != "" {
		q.Set("type", filter.Type.String())
	}
	if filter.Query != "" {
		q.Set("q", filter.Query)
	}
	var out []CareLog
	err := c.do(ctx, http.MethodGet, withQuery("/care-logs", q), nil, &out)
	return out, err
}

// RecentCareLogs lists logs from the last days days; zero uses the server
// default.
func (c *Client) RecentCareLogs(ctx context.Context, days int) ([]CareLog, error) {
	q := url.Values{}
	if days != 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var out []CareLog
	err := c.do(ctx, http.MethodGet, withQuery("/care-logs/recent", q), nil, &out)
	return out, err
}

func (c *Client) SuccessfulCareLogs(ctx context.Context) ([]CareLog, error) {
	var out []CareLog
	err := c.do(ctx, http.MethodGet, "/care-logs/successful", nil, &out)
	return out, err
}

func (c *Client) CareStats(ctx context.Context) (*CareStats, error) {
	var out CareStats
	if err := c.do(ctx, http.MethodGet, "/care-logs/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCareLog(ctx context.Context, logID string) (*CareLog, error) {
	var out CareLog
	if err := c.do(ctx, http.MethodGet, "/care-logs/"+escape(logID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCareLog(ctx context.Context, in NewCareLog) (*CareLog, error) {
	var out CareLog
	if err := c.do(ctx, http.MethodPost, "/care-logs", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCareLog(ctx context.Context, logID string, patch CareLogPatch) (*CareLog, error) {
	var out CareLog
	if err := c.do(ctx, http.MethodPatch, "/care-logs/"+escape(logID), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCareLog(ctx context.Context, logID string) error {
	return c.do(ctx, http.MethodDelete, "/care-logs/"+escape(logID), nil, nil)
}
