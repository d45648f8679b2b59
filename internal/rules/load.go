package rules

import (
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"

	"github.com/clearway/teamsdb/internal/model"
)

// schema constrains a rules file. Every field is optional; omitted fields
// fall back to their zero value, not to the defaults - a rules file fully
// replaces Default().
const schema = `
#Rules: {
	excludeIdSubstrings?: [...string]
	excludeIdPrefixes?: [...string]
	excludeThreadTypes?: [..."Chat" | "Topic" | "Meeting" | "System" | "Unknown"]
	excludeHidden?: bool
}
#Rules
`

// Load reads and validates a CUE rules file.
func Load(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}

	ctx := cuecontext.New()

	constraint := ctx.CompileString(schema)
	if err := constraint.Err(); err != nil {
		return Rules{}, fmt.Errorf("compile rules schema: %w", err)
	}

	value := ctx.CompileBytes(data)
	if err := value.Err(); err != nil {
		return Rules{}, fmt.Errorf("compile rules file %s: %w", path, err)
	}

	unified := constraint.Unify(value)
	if err := unified.Validate(); err != nil {
		return Rules{}, fmt.Errorf("validate rules file %s: %w", path, err)
	}

	var decoded struct {
		ExcludeIDSubstrings []string `json:"excludeIdSubstrings"`
		ExcludeIDPrefixes   []string `json:"excludeIdPrefixes"`
		ExcludeThreadTypes  []string `json:"excludeThreadTypes"`
		ExcludeHidden       bool     `json:"excludeHidden"`
	}
	if err := unified.Decode(&decoded); err != nil {
		return Rules{}, fmt.Errorf("decode rules file %s: %w", path, err)
	}

	r := Rules{
		ExcludeIDSubstrings: decoded.ExcludeIDSubstrings,
		ExcludeIDPrefixes:   decoded.ExcludeIDPrefixes,
		ExcludeHidden:       decoded.ExcludeHidden,
	}
	for _, tt := range decoded.ExcludeThreadTypes {
		r.ExcludeThreadTypes = append(r.ExcludeThreadTypes, model.ThreadType(tt))
	}
	return r, nil
}
