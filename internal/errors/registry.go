package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Configuration (M100-M199)
	"M101": {
		Category: CategoryConfig,
		Message:  "Cannot read config file",
	},
	"M102": {
		Category: CategoryConfig,
		Message:  "Invalid config file syntax",
		Detail:   "The file must be valid JSON (marks.json) or YAML (marks.yaml).",
	},
	"M103": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
	},
	"M104": {
		Category: CategoryCLI,
		Message:  "Template not found",
	},
	"M105": {
		Category: CategoryCLI,
		Message:  "Project file already exists",
	},

	// Dataset (M200-M299)
	"M201": {
		Category: CategoryDataset,
		Message:  "Cannot decode frames",
		Detail:   "Frame files hold a list of frames, each with data and an optional domain.",
	},
	"M202": {
		Category: CategoryDataset,
		Message:  "Dataset has no frames",
	},
	"M203": {
		Category: CategoryDataset,
		Message:  "Unsupported dataset format",
		Detail:   "Use a .json, .yaml or .yml file, or name the format explicitly.",
	},

	// Output (M300-M399)
	"M301": {
		Category: CategoryOutput,
		Message:  "Cannot render SVG",
	},
	"M302": {
		Category: CategoryOutput,
		Message:  "Cannot render PNG",
	},
	"M303": {
		Category: CategoryOutput,
		Message:  "Unsupported output format",
		Detail:   "Output files must end in .svg or .png.",
	},

	// Publishing (M400-M499)
	"M401": {
		Category: CategoryPublish,
		Message:  "Cannot store snapshot",
	},
	"M402": {
		Category: CategoryPublish,
		Message:  "No publish target configured",
		Detail:   "Set publish.dir for local output or publish.bucket for S3.",
	},

	// Live server (M500-M599)
	"M501": {
		Category: CategoryServer,
		Message:  "Live server failed",
	},
}

// GetAllCodes returns all registered codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
