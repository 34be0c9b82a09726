package response

import "smartride-portal/internal/gateway"

type NotificationsResponse struct {
	Items  []gateway.Notification `json:"items"`
	Unread int                    `json:"unread"`
}
