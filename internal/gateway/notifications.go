package gateway

import (
	"context"
	"net/http"
)

// Notifications live outside the versioned API root.

func (c *Client) MyNotifications(ctx context.Context) ([]Notification, error) {
	return fetchList[Notification](ctx, c, c.root("/api/notifications/me"))
}

func (c *Client) MarkNotificationSeen(ctx context.Context, id int64) error {
	_, err := c.call(ctx, http.MethodPost, c.root(idPath("/api/notifications/markSeen/%d", id)), nil)
	return err
}
