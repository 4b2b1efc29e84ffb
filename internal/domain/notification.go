package domain

type Notification struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes,omitempty"`
	IsRead     bool              `json:"is_read"`
	CreatedOn  string            `json:"created_on"`
}
