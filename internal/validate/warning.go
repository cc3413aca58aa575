package validate

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Warning codes (W200-W299)
const (
	WarnCaseTypo         = "W201" // key differs from an expected key only in casing
	WarnUnusedParameter  = "W202" // key matches no parameter
	WarnMissingRequired  = "W203" // required top-level parameter absent
	WarnDataSetMissing   = "W204" // data-set-linked resource without data set
	WarnTemplateVariable = "W205" // config value still holds a <placeholder>
)

// Warning kinds as reported to users.
const (
	KindCaseTypo         = "CaseTypoWarning"
	KindUnusedParameter  = "UnusedParameterWarning"
	KindMissingRequired  = "MissingRequiredParameterWarning"
	KindDataSetMissing   = "DataSetMissingWarning"
	KindTemplateVariable = "TemplateVariableWarning"
)

// Severity ranks warnings.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
)

// String returns a human-readable representation of the Severity.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "low":
		*s = SeverityLow
	case "medium":
		*s = SeverityMedium
	case "high":
		*s = SeverityHigh
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Warning is one finding about a YAML file.
type Warning struct {
	Code     string   `json:"code"`
	Kind     string   `json:"kind"`
	Severity Severity `json:"severity"`
	File     string   `json:"file"`
	Element  int      `json:"element,omitempty"` // 1-based entry of a list document, 0 otherwise
	Section  string   `json:"section,omitempty"` // dotted location of the enclosing mapping
	Key      string   `json:"key,omitempty"`
	Expected string   `json:"expected,omitempty"`
	Value    string   `json:"value,omitempty"`
	Resource string   `json:"resource,omitempty"`
}

func (w Warning) location() string {
	var b strings.Builder
	if w.Element > 0 {
		fmt.Fprintf(&b, " in entry %d", w.Element)
	}
	if w.Section != "" {
		fmt.Fprintf(&b, " in section %q", w.Section)
	}
	return b.String()
}

// Message renders the warning for humans.
func (w Warning) Message() string {
	switch w.Kind {
	case KindCaseTypo:
		return fmt.Sprintf("Got %q. Did you mean %q?%s", w.Key, w.Expected, w.location())
	case KindUnusedParameter:
		return fmt.Sprintf("Parameter %q is not used%s.", w.Key, w.location())
	case KindMissingRequired:
		return fmt.Sprintf("Missing required parameter %q%s.", w.Expected, w.location())
	case KindDataSetMissing:
		if filepath.Base(filepath.Dir(w.File)) == "transformations" {
			return "It is recommended to use a data set if source or destination can be scoped with a data set. If not, ignore this warning."
		}
		return fmt.Sprintf("It is recommended that you set dataSetExternalId for %s. This is missing in %s. Did you forget to add it?",
			w.Resource, filepath.Base(w.File))
	case KindTemplateVariable:
		return fmt.Sprintf("Variable %q has value %q in file: %s. Did you forget to change it?",
			w.Key, w.Value, filepath.Base(w.File))
	default:
		return w.Kind
	}
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Code, w.Kind, w.Message())
}

// WarningList is an ordered collection of warnings.
type WarningList []Warning

// Sort orders warnings by file, then element, section, severity (highest
// first) and message.
func (l WarningList) Sort() {
	slices.SortStableFunc(l, func(a, b Warning) int {
		if c := strings.Compare(a.File, b.File); c != 0 {
			return c
		}
		if a.Element != b.Element {
			return a.Element - b.Element
		}
		if c := strings.Compare(a.Section, b.Section); c != 0 {
			return c
		}
		if a.Severity != b.Severity {
			return int(b.Severity - a.Severity)
		}
		return strings.Compare(a.Message(), b.Message())
	})
}

// FileWarnings are the warnings of one file.
type FileWarnings struct {
	File     string      `json:"file"`
	Warnings WarningList `json:"warnings"`
}

// Group splits the list by file, in first-seen file order.
func (l WarningList) Group() []FileWarnings {
	var out []FileWarnings
	index := make(map[string]int)
	for _, w := range l {
		i, ok := index[w.File]
		if !ok {
			i = len(out)
			index[w.File] = i
			out = append(out, FileWarnings{File: w.File})
		}
		out[i].Warnings = append(out[i].Warnings, w)
	}
	return out
}

// Count returns how many warnings have severity s.
func (l WarningList) Count(s Severity) int {
	n := 0
	for _, w := range l {
		if w.Severity == s {
			n++
		}
	}
	return n
}
