package output

// DocumentStore reads source documents and persists generated artifacts
type DocumentStore interface {
	// ReadDocument returns the full text of the document at path
	ReadDocument(path string) (string, error)

	// WriteArtifact replaces the file at path with data in one step
	WriteArtifact(path string, data []byte) error
}
