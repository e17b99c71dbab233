// internal/nav/models.go
package nav

// PageDescriptor is one document of the set. URL is the bare filename and
// must be unique within the list; list order defines previous and next.
type PageDescriptor struct {
	URL   string `json:"url" yaml:"url"`
	Title string `json:"title" yaml:"title"`
}

// DocumentMetadata fills the about box. DescriptionHTML is inserted as is,
// so it must already be trusted or sanitized.
type DocumentMetadata struct {
	Title              string
	DescriptionHTML    string
	DocmakerArchiveURL string
	HTMLArchiveURL     string
}

// Context is the resolved position of the current page in the list.
type Context struct {
	ActiveIndex int    `json:"activeIndex"`
	ActiveTitle string `json:"activeTitle"`
	HasPrevious bool   `json:"hasPrevious"`
	HasNext     bool   `json:"hasNext"`
	// Matched is false when the location named no page and ActiveIndex
	// fell back to the first one.
	Matched bool `json:"matched"`
}
