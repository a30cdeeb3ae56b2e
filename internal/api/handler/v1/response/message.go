package response

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}
