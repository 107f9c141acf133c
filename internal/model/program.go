package model

// Program is a training program as stored in the Programs table.
type Program struct {
	ID          string `json:"-"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Overview    string `json:"-"`
}

type ProgramSummary struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProgramDetail is a program together with everything linked to it.
type ProgramDetail struct {
	Slug      string     `json:"slug"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle"`
	Overview  []string   `json:"overview"`
	Modules   []Module   `json:"modules"`
	Manuals   []Manual   `json:"manuals"`
	Forms     []Form     `json:"forms"`
	Resources []Resource `json:"resources"`
}
