package task

// TaskName is used to register and route the strings task to the correct queue.
const TaskName = "strings-worker.tasks.strings"

// ConfigField describes one user-facing option in the task configuration
// schema advertised to the orchestrating pipeline.
type ConfigField struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Metadata is the registration record for a task type: display information
// plus the configuration schema. It is static, process-wide data with no
// runtime mutation.
type Metadata struct {
	DisplayName string        `json:"display_name"`
	Description string        `json:"description"`
	TaskConfig  []ConfigField `json:"task_config"`
}

// TaskMetadata registers the strings task in the core system.
var TaskMetadata = Metadata{
	DisplayName: "Strings",
	Description: "Extract strings from files",
	TaskConfig: []ConfigField{
		{
			Name:  "UTF16LE",
			Label: "Extract Unicode strings",
			Description: "This will tell the strings command to extract UTF-16LE (little" +
				" endian) encoded strings",
			Type: "checkbox",
		},
		{
			Name:  "ASCII",
			Label: "Extract ASCII strings",
			Description: "This will tell the strings command to extract ASCII" +
				" (single-7-bit-byte) encoded strings",
			Type: "checkbox",
		},
	},
}
