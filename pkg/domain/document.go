package domain

// Document is a rendered output artifact, e.g. an environment file.
type Document struct {
	// Name is the file name relative to the output directory.
	Name string
	// Content is the full text of the document.
	Content string
}
