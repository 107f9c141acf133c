package model

// Module is a training module. SortOrder is nil when the record has none.
type Module struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Duration  string   `json:"duration,omitempty"`
	FileURL   string   `json:"fileUrl,omitempty"`
	SortOrder *float64 `json:"-"`
}

type Manual struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	FileURL string `json:"fileUrl,omitempty"`
}

type Form struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	FileURL  string `json:"fileUrl,omitempty"`
}

type Resource struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	URL      string `json:"url,omitempty"`
}
