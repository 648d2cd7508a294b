package dto

type SearchQuery struct {
	Q     string `form:"q" binding:"required,min=1,max=100"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

// Hit is one search result across events, players and photos.
type Hit struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Body     string `json:"body,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Date     int64  `json:"date,omitempty"`
}

type SearchResponse struct {
	Query   string `json:"query"`
	Events  []Hit  `json:"events"`
	Players []Hit  `json:"players"`
	Photos  []Hit  `json:"photos"`
}
