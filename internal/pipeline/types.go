package pipeline

// Step identifies one stage of the provisioning pipeline. Steps always run in
// the order of Steps.
type Step string

const (
	StepCopyComplete Step = "copy_complete"
	StepExclude      Step = "exclude_from_obsidian"
	StepCopyFiles    Step = "copy_files"
	StepEmptyFolders Step = "create_empty_folders"
	StepBaseFiles    Step = "create_base_files"
)

// Steps lists the pipeline stages in execution order.
var Steps = []Step{StepCopyComplete, StepExclude, StepCopyFiles, StepEmptyFolders, StepBaseFiles}

// Action outcomes.
const (
	ActionCopied  = "copied"
	ActionRemoved = "removed"
	ActionCreated = "created"
	ActionWritten = "written"
	ActionMissing = "missing"
	ActionExists  = "exists"
)

// FileAction records what happened to one configuration entry.
type FileAction struct {
	Step   Step
	Path   string
	Action string
}

// EntryError is a per-entry failure. It never aborts the pipeline.
type EntryError struct {
	Step Step
	Path string
	Err  error
}

func (e EntryError) Error() string {
	return string(e.Step) + " " + e.Path + ": " + e.Err.Error()
}

func (e EntryError) Unwrap() error {
	return e.Err
}

// Result holds the outcome of a pipeline run.
type Result struct {
	Applied []FileAction
	Skipped []FileAction
	Errors  []EntryError
}

// SkippedIn returns the entries of step that were skipped.
func (r *Result) SkippedIn(step Step) []FileAction {
	var out []FileAction
	for _, a := range r.Skipped {
		if a.Step == step {
			out = append(out, a)
		}
	}
	return out
}
