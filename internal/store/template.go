package store

import (
	"fmt"
	"time"
)

// Template is a predefined content skeleton a note can be restarted from.
type Template struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content func(now time.Time) string
}

var templates = []Template{
	{
		ID:      "blank",
		Name:    "Blank Note",
		Content: func(time.Time) string { return "" },
	},
	{
		ID:   "todo",
		Name: "To-Do List",
		Content: func(time.Time) string {
			return "# To-Do List\n\n- [ ] Task 1\n- [ ] Task 2\n- [ ] Task 3"
		},
	},
	{
		ID:   "meeting",
		Name: "Meeting Notes",
		Content: func(now time.Time) string {
			return fmt.Sprintf(`# Meeting Notes

Date: %s
Attendees:

## Agenda
1.
2.
3.

## Discussion Points

## Action Items
- [ ]
- [ ]

## Next Steps`, now.Format("1/2/2006"))
		},
	},
	{
		ID:   "journal",
		Name: "Journal Entry",
		Content: func(now time.Time) string {
			return fmt.Sprintf(`# Journal Entry - %s

## Today's Highlights

## Thoughts & Reflections

## Goals for Tomorrow
- [ ]
- [ ]`, now.Format("1/2/2006"))
		},
	},
}

// Templates returns the built-in template set.
func Templates() []Template {
	return templates
}

// TemplateByID looks up a built-in template.
func TemplateByID(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
