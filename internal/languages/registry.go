// Package languages holds the closed table of languages the workspace
// understands, mapping the user-facing tag to the id stored on file rows and
// to the id the judge service expects. Adding a language is a table edit.
package languages

// Language is one registry entry.
type Language struct {
	Tag     string // user-facing tag, e.g. "python"
	StoreID int    // persistence-layer language id
	JudgeID int    // judge submission language id
}

// DefaultTag is the fallback for unknown tags and legacy store ids.
const DefaultTag = "javascript"

var registry = []Language{
	{Tag: "javascript", StoreID: 1, JudgeID: 63},
	{Tag: "python", StoreID: 2, JudgeID: 71},
	{Tag: "cpp", StoreID: 3, JudgeID: 54},
	{Tag: "java", StoreID: 4, JudgeID: 62},
}

// Lookup resolves a tag to its registry entry. Unknown tags resolve to the
// default entry rather than failing, so legacy records and half-initialized
// clients keep working.
func Lookup(tag string) Language {
	for _, l := range registry {
		if l.Tag == tag {
			return l
		}
	}
	return Lookup(DefaultTag)
}

// JudgeID returns the judge language id for a tag.
func JudgeID(tag string) int {
	return Lookup(tag).JudgeID
}

// StoreID returns the persistence language id for a tag.
func StoreID(tag string) int {
	return Lookup(tag).StoreID
}

// TagForStoreID maps a stored language id back to its tag, defaulting for
// ids the registry does not know.
func TagForStoreID(id int) string {
	for _, l := range registry {
		if l.StoreID == id {
			return l.Tag
		}
	}
	return DefaultTag
}

// Known reports whether the tag is a registry entry.
func Known(tag string) bool {
	for _, l := range registry {
		if l.Tag == tag {
			return true
		}
	}
	return false
}

// All returns a copy of the registry table.
func All() []Language {
	out := make([]Language, len(registry))
	copy(out, registry)
	return out
}
