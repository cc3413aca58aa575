package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/roach88/deploykit/internal/casing"
	"github.com/roach88/deploykit/internal/params"
)

// Resource validates a decoded resource document against spec.
//
// A list document is validated entry by entry with 1-based element
// numbers. Keys that match an expected key once camelCased or case-folded
// produce a case-typo warning; other unknown keys produce an unused
// parameter warning unless spec is incomplete. Required parameters are
// checked at the top level only.
func Resource(doc any, spec *params.SpecSet, file string) WarningList {
	switch v := doc.(type) {
	case []any:
		var out WarningList
		for i, item := range v {
			out = append(out, resource(item, spec, file, i+1)...)
		}
		return out
	default:
		return resource(doc, spec, file, 0)
	}
}

func resource(doc any, spec *params.SpecSet, file string, element int) WarningList {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	w := &walker{spec: spec, file: file, element: element}
	present := w.object(m, nil, nil)

	reported := make(map[string]bool)
	for _, req := range spec.Required(1) {
		name := req.Path.Last().Key
		if present[name] || reported[name] {
			continue
		}
		reported[name] = true
		w.add(Warning{
			Code:     WarnMissingRequired,
			Kind:     KindMissingRequired,
			Severity: SeverityHigh,
			Expected: name,
		}, nil)
	}
	return w.out
}

type walker struct {
	spec    *params.SpecSet
	file    string
	element int
	out     WarningList
}

func (w *walker) add(warn Warning, section []string) {
	warn.File = w.file
	warn.Element = w.element
	warn.Section = strings.Join(section, ".")
	w.out = append(w.out, warn)
}

// object checks the keys of m against the children of path. It returns the
// expected names the document supplies, counting case typos as supplied.
func (w *walker) object(m map[string]any, path params.Path, section []string) map[string]bool {
	present := make(map[string]bool, len(m))
	for _, key := range sortedKeys(m) {
		child := path.Child(key)
		if w.spec.HasPath(child) {
			present[key] = true
			w.value(m[key], child, appendSection(section, key))
			continue
		}
		if expected, ok := w.match(path, key); ok {
			present[expected] = true
			w.add(Warning{
				Code:     WarnCaseTypo,
				Kind:     KindCaseTypo,
				Severity: SeverityLow,
				Key:      key,
				Expected: expected,
			}, section)
			w.value(m[key], path.Child(expected), appendSection(section, key))
			continue
		}
		if !w.spec.Complete {
			continue
		}
		w.add(Warning{
			Code:     WarnUnusedParameter,
			Kind:     KindUnusedParameter,
			Severity: SeverityLow,
			Key:      key,
		}, section)
	}
	return present
}

// match finds the expected sibling a mis-cased key stands for.
func (w *walker) match(path params.Path, key string) (string, bool) {
	if camel := casing.ToCamel(key); camel != key && w.spec.HasPath(path.Child(camel)) {
		return camel, true
	}
	folded := casing.FoldKey(key)
	for _, name := range w.spec.ChildNames(path) {
		if casing.FoldKey(name) == folded {
			return name, true
		}
	}
	return "", false
}

func (w *walker) value(v any, path params.Path, section []string) {
	switch val := v.(type) {
	case map[string]any:
		if w.spec.IsMapping(path) {
			for _, key := range sortedKeys(val) {
				if entry, ok := val[key].(map[string]any); ok && w.spec.HasChildren(path) {
					w.object(entry, path, appendSection(section, key))
				}
			}
			return
		}
		if w.spec.HasChildren(path) {
			w.object(val, path, section)
		}
	case []any:
		elem := path.Element()
		if !w.spec.HasPath(elem) && !w.spec.HasChildren(elem) {
			return
		}
		for i, item := range val {
			w.value(item, elem, appendSection(section, fmt.Sprint(i)))
		}
	}
}

func appendSection(section []string, key string) []string {
	out := make([]string, len(section), len(section)+1)
	copy(out, section)
	return append(out, key)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DataSet warns about documents of a data-set-linked resource that set
// neither dataSetId nor dataSetExternalId. Resources whose schema has no
// dataSetId parameter are never flagged.
func DataSet(doc any, spec *params.SpecSet, file, idKey, resourceName string) WarningList {
	if !spec.HasPath(params.PathOf("dataSetId")) {
		return nil
	}
	switch v := doc.(type) {
	case []any:
		var out WarningList
		for _, item := range v {
			out = append(out, DataSet(item, spec, file, idKey, resourceName)...)
		}
		return out
	case map[string]any:
		if _, ok := v["dataSetExternalId"]; ok {
			return nil
		}
		if _, ok := v["dataSetId"]; ok {
			return nil
		}
		return WarningList{{
			Code:     WarnDataSetMissing,
			Kind:     KindDataSetMissing,
			Severity: SeverityMedium,
			File:     file,
			Key:      idKey,
			Value:    identifier(v, idKey),
			Resource: resourceName,
		}}
	default:
		return nil
	}
}

func identifier(m map[string]any, idKey string) string {
	if v, ok := m[idKey]; ok {
		return fmt.Sprint(v)
	}
	if v, ok := m[casing.ToSnake(idKey)]; ok {
		return fmt.Sprint(v)
	}
	return "No identifier " + idKey
}

var templateVariable = regexp.MustCompile(`^<.*?>`)

// TemplateVariables warns about config values that still hold template
// placeholders such as <change_me>. Nested mappings are searched
// recursively; Section is the dotted path of the enclosing mapping.
func TemplateVariables(config map[string]any, file string) WarningList {
	return templateVariables(config, file, "")
}

func templateVariables(config map[string]any, file, path string) WarningList {
	var out WarningList
	for _, key := range sortedKeys(config) {
		switch v := config[key].(type) {
		case string:
			if templateVariable.MatchString(v) {
				out = append(out, Warning{
					Code:     WarnTemplateVariable,
					Kind:     KindTemplateVariable,
					Severity: SeverityMedium,
					File:     file,
					Section:  path,
					Key:      key,
					Value:    v,
				})
			}
		case map[string]any:
			sub := key
			if path != "" {
				sub = path + "." + key
			}
			out = append(out, templateVariables(v, file, sub)...)
		}
	}
	return out
}

// ReplaceDataSetExternalID returns doc with every top-level
// dataSetExternalId key renamed to dataSetId, the parameter the reference
// resolves to at deploy time. doc itself is not modified.
func ReplaceDataSetExternalID(doc any) any {
	switch v := doc.(type) {
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = ReplaceDataSetExternalID(item)
		}
		return out
	case map[string]any:
		ext, ok := v["dataSetExternalId"]
		if !ok {
			return v
		}
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = val
		}
		delete(out, "dataSetExternalId")
		if _, exists := out["dataSetId"]; !exists {
			out["dataSetId"] = ext
		}
		return out
	default:
		return doc
	}
}
