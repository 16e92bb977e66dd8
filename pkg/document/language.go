package document

// MarkdownLanguage is the language of every markup cell.
const MarkdownLanguage = "markdown"

// Language is a cell language known to the notebook host.
type Language struct {
	// ID is the language identifier used by the host.
	ID string
	// Abbrev is the tag written inside ```{...}.
	Abbrev string
}

var languages = []Language{
	{ID: "javascript", Abbrev: "javascript"},
	{ID: "css", Abbrev: "css"},
	{ID: "html", Abbrev: "html"},
}

// Languages returns the fixed language table.
func Languages() []Language {
	result := make([]Language, len(languages))
	copy(result, languages)
	return result
}

// ResolveLanguage maps a fence tag to a language identifier.
// Unknown tags are returned unchanged.
func ResolveLanguage(tag string) string {
	for _, l := range languages {
		if l.Abbrev == tag {
			return l.ID
		}
	}
	return tag
}

// AbbrevLanguage maps a language identifier back to its fence tag.
// Unknown identifiers are returned unchanged.
func AbbrevLanguage(id string) string {
	for _, l := range languages {
		if l.ID == id {
			return l.Abbrev
		}
	}
	return id
}
