package catalog

// Task is one exercise: what to ask, the canonical answer and how an attempt
// is judged. Tasks are read once at startup and never mutated.
type Task struct {
	Description     string `json:"description" yaml:"description"`
	ExpectedCommand string `json:"expectedCommand" yaml:"expectedCommand"`

	// CheckCommand is a shell predicate run after the attempt; exit 0 means
	// the system is in the wanted state.
	CheckCommand string `json:"checkCommand,omitempty" yaml:"checkCommand,omitempty"`

	// OutputIncludes is the substring the attempt's output must contain.
	// nil means no output check, a pointer to "" means the output must be empty.
	OutputIncludes *string `json:"outputIncludes,omitempty" yaml:"outputIncludes,omitempty"`

	StrictCommandMatch bool   `json:"strictCommandMatch,omitempty" yaml:"strictCommandMatch,omitempty"`
	NonZeroOkay        bool   `json:"nonZeroOkay,omitempty" yaml:"nonZeroOkay,omitempty"`
	Explanation        string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// HasOutputCheck reports whether outputIncludes was set at all, including "".
func (t Task) HasOutputCheck() bool {
	return t.OutputIncludes != nil
}

// IsOutputBased reports whether the task is judged on printed output. An
// empty outputIncludes still makes the task state-based.
func (t Task) IsOutputBased() bool {
	return t.OutputIncludes != nil && *t.OutputIncludes != ""
}

// HasCheckCommand reports whether a state predicate is defined.
func (t Task) HasCheckCommand() bool {
	return t.CheckCommand != ""
}

// Output returns the outputIncludes value, "" when unset.
func (t Task) Output() string {
	if t.OutputIncludes == nil {
		return ""
	}
	return *t.OutputIncludes
}

// StringPtr is a helper for building tasks in code.
func StringPtr(s string) *string {
	return &s
}
