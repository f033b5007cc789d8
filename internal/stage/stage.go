package stage

// InputFile is a logical reference to a file staged for processing.
// Instances are supplied by the caller (or decoded from a piped prior
// result) and are immutable for the duration of a task.
type InputFile struct {
	// ID is the unique identifier of the file in the shared storage
	ID string `json:"id"`

	// Path is the absolute filesystem path of the staged file
	Path string `json:"path"`

	// DisplayName is the human-readable name shown in the UI and used
	// to derive output file names
	DisplayName string `json:"display_name"`
}

// OutputFile describes a file produced by a task. The file persists on the
// shared output filesystem after the task finishes so that downstream
// pipeline stages can consume it.
type OutputFile struct {
	// ID is the unique identifier assigned when the file was allocated
	ID string `json:"id"`

	// Path is the absolute filesystem path of the output file
	Path string `json:"path"`

	// DisplayName is the human-readable name, derived from the input
	// file name and the operation that produced the output
	DisplayName string `json:"display_name"`
}

// Stager resolves task inputs to local paths and allocates output files.
// Version: 1.0
type Stager interface {
	// ResolveInputs returns the input files a task should process.
	// When pipeResult is non-empty it takes precedence over the explicit
	// list: it is decoded and the previous task's output files become
	// this task's inputs.
	ResolveInputs(pipeResult string, explicit []InputFile) ([]InputFile, error)

	// CreateOutputFile allocates a new writable file in dir and returns
	// its descriptor. The file exists (empty) when the call returns.
	CreateOutputFile(dir, displayName string) (OutputFile, error)

	// CountLines returns the number of newline-terminated lines
	// currently written to the file at path.
	CountLines(path string) (int, error)
}
