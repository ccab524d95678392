package models

// ResourceType categorizes a link entry
type ResourceType string

const (
	TypeZoom     ResourceType = "zoom"
	TypeForm     ResourceType = "form"
	TypeResource ResourceType = "resource"
	TypeOther    ResourceType = "other"
)

// Day represents one calendar day of the course
type Day struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Order    int       `json:"order"`
	Date     string    `json:"date,omitempty"` // DD/MM taken from the header, omitted when absent
	Sections []Section `json:"sections"`
}

// Section groups the resources of a day under a heading
type Section struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Items []Resource `json:"items"`
}

// Resource is a single titled link
type Resource struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        ResourceType `json:"type"`
	URL         string       `json:"url"`
	Notes       string       `json:"notes,omitempty"`
}

// ResourceCount returns the number of resources across all sections of the day
func (d *Day) ResourceCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Items)
	}
	return n
}
