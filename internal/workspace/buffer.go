package workspace

// Buffer is the in-memory editing unit as the server models it: an immutable
// value whose transitions are pure. A zero FileID means the buffer is a
// scratchpad with no stored identity behind it.
type Buffer struct {
	Content     string
	LanguageTag string
	ProjectID   int64
	FileID      int64
}

// NewScratch returns an unattached buffer.
func NewScratch(languageTag string) Buffer {
	return Buffer{LanguageTag: languageTag}
}

// Attached reports whether the buffer is bound to a stored file.
func (b Buffer) Attached() bool {
	return b.FileID != 0
}

// Attach binds the buffer to a stored file. Subsequent saves update that
// file in place instead of re-entering promotion.
func (b Buffer) Attach(projectID, fileID int64) Buffer {
	b.ProjectID = projectID
	b.FileID = fileID
	return b
}

// Detach returns the buffer to scratchpad state, keeping its content.
func (b Buffer) Detach() Buffer {
	b.ProjectID = 0
	b.FileID = 0
	return b
}

// UpdateContent replaces the buffer text.
func (b Buffer) UpdateContent(content string) Buffer {
	b.Content = content
	return b
}

// SetLanguage switches the buffer's language tag.
func (b Buffer) SetLanguage(tag string) Buffer {
	b.LanguageTag = tag
	return b
}
