package programs

// Tables holds the store table names. Field names are fixed.
type Tables struct {
	Programs  string
	Modules   string
	Manuals   string
	Forms     string
	Resources string
}

func DefaultTables() Tables {
	return Tables{
		Programs:  "Programs",
		Modules:   "Training Modules",
		Manuals:   "Protocol Manuals",
		Forms:     "Documentation Forms",
		Resources: "Additional Resources",
	}
}

// Record caps per query.
const (
	ListLimit     = 50
	ModuleLimit   = 100
	ManualLimit   = 100
	FormLimit     = 200
	ResourceLimit = 100
)

const (
	FieldSlug        = "Slug"
	FieldName        = "Name"
	FieldDescription = "Description"
	FieldOverview    = "Overview"

	// FieldPrograms is the list of program slugs on every child table.
	FieldPrograms  = "Programs"
	FieldDuration  = "Duration"
	FieldSortOrder = "Sort Order"
	FieldCategory  = "Category"
	FieldFileURL   = "File URL"
	FieldURL       = "URL"
	FieldFile      = "File"
)

var (
	programFields  = []string{FieldSlug, FieldName, FieldDescription, FieldOverview}
	summaryFields  = []string{FieldSlug, FieldName, FieldDescription}
	moduleFields   = []string{FieldName, FieldDuration, FieldSortOrder, FieldFileURL, FieldFile}
	manualFields   = []string{FieldName, FieldFileURL, FieldFile}
	formFields     = []string{FieldName, FieldCategory, FieldFileURL, FieldFile}
	resourceFields = []string{FieldName, FieldCategory, FieldURL, FieldFile}
)
