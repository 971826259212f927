package domain

// NewsItem is one generated public-health headline.
type NewsItem struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
	Date    string `json:"date"` // YYYY-MM-DD
	URL     string `json:"url"`
}
