package output

// LocaleDocument is a parsed localization document.
type LocaleDocument interface {
	// Lookup returns the value stored at key as text, and whether the key exists.
	// Non-string values are returned in their JSON form.
	Lookup(key string) (string, bool)
	// Set replaces the value at an existing key. It returns domain.ErrKeyNotFound
	// when key is absent, documents never grow keys.
	Set(key, value string) error
	Encode() ([]byte, error)
}

// LocaleDocumentStore loads and persists localization documents on disk.
type LocaleDocumentStore interface {
	// Load parses the document at path. A missing file yields an error
	// satisfying errors.Is(err, fs.ErrNotExist).
	Load(path string) (LocaleDocument, error)
	// Save overwrites path with the encoded document.
	Save(path string, doc LocaleDocument) error
}
