package content

// Attachment is one file in an attachment field.
type Attachment struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	URL      string `json:"url" yaml:"url"`
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Size     int64  `json:"size,omitempty" yaml:"size,omitempty"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
}

type FileKind int

const (
	Empty FileKind = iota
	Linked
	Attached
)

func (k FileKind) String() string {
	switch k {
	case Linked:
		return "linked"
	case Attached:
		return "attached"
	default:
		return "empty"
	}
}

// FileRef says where a record's file lives: an explicit link, a list of
// attachments, or nowhere.
type FileRef struct {
	Kind        FileKind
	Link        string
	Attachments []Attachment
}

// URL returns the download URL. Only the first attachment is ever exposed.
func (f FileRef) URL() (string, bool) {
	switch f.Kind {
	case Linked:
		return f.Link, true
	case Attached:
		url := f.Attachments[0].URL
		return url, url != ""
	default:
		return "", false
	}
}

// Locate classifies the raw link and attachment field values of a record.
// A non-empty link always wins, even when attachments are present.
func Locate(link, attachments any) FileRef {
	if s, ok := link.(string); ok && s != "" {
		return FileRef{Kind: Linked, Link: s}
	}
	if files := decodeAttachments(attachments); len(files) > 0 {
		return FileRef{Kind: Attached, Attachments: files}
	}
	return FileRef{Kind: Empty}
}

// ResolveURL is Locate followed by URL.
func ResolveURL(link, attachments any) (string, bool) {
	return Locate(link, attachments).URL()
}

// decodeAttachments accepts typed attachments as well as the generic shape
// produced by JSON and YAML decoders. Entries that are not objects are skipped.
func decodeAttachments(v any) []Attachment {
	var out []Attachment
	switch list := v.(type) {
	case []Attachment:
		out = list
	case []any:
		for _, item := range list {
			if a, ok := decodeAttachment(item); ok {
				out = append(out, a)
			}
		}
	case []map[string]any:
		for _, item := range list {
			if a, ok := decodeAttachment(item); ok {
				out = append(out, a)
			}
		}
	}
	return out
}

func decodeAttachment(v any) (Attachment, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return Attachment{}, false
	}

	var a Attachment
	a.URL, _ = m["url"].(string)
	a.ID, _ = m["id"].(string)
	a.Filename, _ = m["filename"].(string)
	a.Type, _ = m["type"].(string)
	switch size := m["size"].(type) {
	case float64:
		a.Size = int64(size)
	case int:
		a.Size = int64(size)
	case int64:
		a.Size = size
	}
	return a, true
}
