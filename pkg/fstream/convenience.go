package fstream

// OpenInput opens an existing file for reading only.
func OpenInput(path string) (*Stream, error) {
	return Open(path, Read)
}

// OpenOutput opens path for writing only, truncating any existing content
// so the stream starts from an empty file.
func OpenOutput(path string) (*Stream, error) {
	return OpenFile(path, true, Write)
}
