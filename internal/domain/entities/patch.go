package entities

// SQLPatch is a named SQL statement (typically a function definition) to push
// to the hosted database.
type SQLPatch struct {
	Name string
	SQL  string
}

// Attempt is one try of a patch against one endpoint.
type Attempt struct {
	Endpoint   string
	StatusCode int
	Body       string
	Err        error
}

// OK reports whether the attempt applied the patch.
func (a Attempt) OK() bool {
	return a.Err == nil
}

// SubmitResult is the outcome of one patch across all candidate endpoints.
type SubmitResult struct {
	Patch        SQLPatch
	Attempts     []Attempt
	Applied      bool
	AppliedBy    string
	FallbackPath string
	FallbackErr  error
}
