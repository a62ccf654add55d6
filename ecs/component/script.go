package component

// Script attaches a tengo program that runs once per frame between the
// physics pre and post steps. Source is resolved from Path when empty.
type Script struct {
	Path   string
	Source []byte
	// Vars holds globals the script reads and writes across frames.
	Vars map[string]any
	// Disabled is set after a script fails to compile.
	Disabled bool
}

var ScriptComponent = NewComponent[Script]()
