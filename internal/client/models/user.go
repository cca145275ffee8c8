package models

// User is the authenticated account as returned by the backend on
// login/register. It is held in memory only; nothing re-fetches it on
// relaunch.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// MerchItem is an immutable catalog entry supplied by an external catalog
// collaborator. Price is a display string that may carry a leading currency
// symbol ("$49.99").
type MerchItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageRef string `json:"image_ref"`
	Category string `json:"category"`
}

// Meetup is a community event. The client only lists these.
type Meetup struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Description string `json:"description"`
}
