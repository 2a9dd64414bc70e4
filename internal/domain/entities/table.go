package entities

// Entry maps one locale file to the string written at the table's key.
type Entry struct {
	File  string
	Value string
}

// TranslationTable drives one updater run. Entries are processed in order.
type TranslationTable struct {
	Name    string
	Key     string
	Entries []Entry
}

// WithKey returns a copy of the table targeting key instead.
func (t TranslationTable) WithKey(key string) TranslationTable {
	out := t
	out.Key = key
	out.Entries = append([]Entry(nil), t.Entries...)
	return out
}
