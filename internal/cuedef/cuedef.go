package cuedef

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/deploykit/internal/schema"
	"github.com/roach88/deploykit/internal/typeexpr"
)

// Parameter kinds accepted in the struct form of a parameter.
const (
	kindPositional    = "positional"
	kindVarPositional = "var_positional"
	kindVarKeyword    = "var_keyword"
)

// FindFiles returns every .cue file under dir in lexical order.
func FindFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".cue") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// Definitions summarises what a compile registered.
type Definitions struct {
	Modules []string  // module names, sorted
	Classes []string  // class names in declaration order
	Kinds   []KindDef // resource kinds backed by the classes
}

// KindDef declares a resource kind whose schema is derived from Root.
type KindDef struct {
	Name          string
	Folder        string
	Root          string
	IdentifierKey string
	DataSetLinked bool
}

// Load compiles the CUE package in dir and registers its modules and
// classes into reg. Nothing is registered when any definition is invalid.
func Load(dir string, reg *schema.Registry) (*Definitions, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("definitions directory not found: %s", dir)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("definitions path is not a directory: %s", dir)
	}

	files, err := FindFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .cue files found in %s", dir)
	}

	ctx := cuecontext.New()
	insts := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(insts) == 0 {
		return nil, fmt.Errorf("no CUE instances in %s", dir)
	}
	if err := insts[0].Err; err != nil {
		return nil, formatCUEError(err)
	}

	v := ctx.BuildInstance(insts[0])
	return Compile(v, reg)
}

// Compile registers the modules and classes declared in v into reg.
//
// v is the root of a definition package: a "module" struct keyed by module
// name, a "class" struct keyed by class name and an optional "kind" struct
// naming resource kinds. Nothing is registered when any definition is
// invalid.
func Compile(v cue.Value, reg *schema.Registry) (*Definitions, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	staged := schema.NewRegistry()
	if err := compileModules(v.LookupPath(cue.ParsePath("module")), staged); err != nil {
		return nil, err
	}
	if err := compileClasses(v.LookupPath(cue.ParsePath("class")), staged); err != nil {
		return nil, err
	}
	kinds, err := compileKinds(v.LookupPath(cue.ParsePath("kind")))
	if err != nil {
		return nil, err
	}

	if err := reg.Merge(staged); err != nil {
		return nil, fmt.Errorf("register definitions: %w", err)
	}

	defs := &Definitions{Modules: staged.Modules(), Kinds: kinds}
	for _, c := range staged.Classes() {
		defs.Classes = append(defs.Classes, c.Name)
	}
	return defs, nil
}

// compileKinds reads kind declarations. Folder defaults to the lower-cased
// kind name and IdentifierKey to externalId.
func compileKinds(v cue.Value) ([]KindDef, error) {
	if !v.Exists() {
		return nil, nil
	}
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var kinds []KindDef
	for iter.Next() {
		kv := iter.Value()
		field := "kind." + iter.Label()
		k := KindDef{Name: iter.Label()}

		if k.Root, err = optionalString(kv, "root", field); err != nil {
			return nil, err
		}
		if k.Root == "" {
			return nil, &DefinitionError{Field: field + ".root", Message: "root class is required", Pos: kv.Pos()}
		}
		if k.Folder, err = optionalString(kv, "folder", field); err != nil {
			return nil, err
		}
		if k.Folder == "" {
			k.Folder = strings.ToLower(k.Name)
		}
		if k.IdentifierKey, err = optionalString(kv, "identifier_key", field); err != nil {
			return nil, err
		}
		if k.IdentifierKey == "" {
			k.IdentifierKey = "externalId"
		}
		if dsVal := kv.LookupPath(cue.ParsePath("data_set_linked")); dsVal.Exists() {
			if k.DataSetLinked, err = dsVal.Bool(); err != nil {
				return nil, &DefinitionError{Field: field + ".data_set_linked", Message: "data_set_linked must be a bool", Pos: dsVal.Pos()}
			}
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func compileModules(v cue.Value, reg *schema.Registry) error {
	if !v.Exists() {
		return nil
	}
	iter, err := v.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		name := iter.Label()
		m := schema.Module{Name: name, Imports: make(map[string]schema.Type)}

		importsVal := iter.Value().LookupPath(cue.ParsePath("imports"))
		if importsVal.Exists() {
			imports, err := importsVal.Fields()
			if err != nil {
				return formatCUEError(err)
			}
			for imports.Next() {
				field := fmt.Sprintf("module.%q.imports.%s", name, imports.Label())
				t, err := compileImport(imports.Value(), field)
				if err != nil {
					return err
				}
				m.Imports[imports.Label()] = t
			}
		}
		reg.AddModule(m)
	}
	return nil
}

func compileImport(v cue.Value, field string) (schema.Type, error) {
	text, err := v.String()
	if err != nil {
		return nil, &DefinitionError{Field: field, Message: "import must be an annotation string", Pos: v.Pos()}
	}
	expr, err := typeexpr.Parse(text)
	if err != nil {
		return nil, &DefinitionError{Field: field, Message: err.Error(), Pos: v.Pos()}
	}
	return toType(expr), nil
}

func compileClasses(v cue.Value, reg *schema.Registry) error {
	if !v.Exists() {
		return nil
	}
	iter, err := v.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		c, err := CompileClass(iter.Value())
		if err != nil {
			return err
		}
		if err := reg.Register(c); err != nil {
			return &DefinitionError{Field: "class." + c.Name, Message: err.Error(), Pos: iter.Value().Pos()}
		}
	}
	return nil
}

// CompileClass parses a single class definition. The class name is the
// last label of v's path.
func CompileClass(v cue.Value) (*schema.Class, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	c := &schema.Class{}
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		c.Name = labels[len(labels)-1].String()
	}
	if c.Name == "" {
		return nil, &DefinitionError{Field: "class", Message: "class name is required", Pos: v.Pos()}
	}
	field := "class." + c.Name

	var err error
	if c.Module, err = optionalString(v, "module", field); err != nil {
		return nil, err
	}
	if c.Base, err = optionalString(v, "base", field); err != nil {
		return nil, err
	}
	if abstractVal := v.LookupPath(cue.ParsePath("abstract")); abstractVal.Exists() {
		if c.Abstract, err = abstractVal.Bool(); err != nil {
			return nil, &DefinitionError{Field: field + ".abstract", Message: "abstract must be a bool", Pos: abstractVal.Pos()}
		}
	}

	if c.Params, err = compileParams(v.LookupPath(cue.ParsePath("params")), field); err != nil {
		return nil, err
	}
	if c.Locals, err = compileEnums(v.LookupPath(cue.ParsePath("enums")), field); err != nil {
		return nil, err
	}
	return c, nil
}

func optionalString(v cue.Value, name, field string) (string, error) {
	sv := v.LookupPath(cue.ParsePath(name))
	if !sv.Exists() {
		return "", nil
	}
	s, err := sv.String()
	if err != nil {
		return "", &DefinitionError{Field: field + "." + name, Message: name + " must be a string", Pos: sv.Pos()}
	}
	return s, nil
}

// compileParams reads parameters in declaration order. A parameter is
// either an annotation string (required) or a struct with type, default,
// optional and kind fields.
func compileParams(v cue.Value, field string) ([]schema.Param, error) {
	if !v.Exists() {
		return nil, nil
	}
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var params []schema.Param
	for iter.Next() {
		name := iter.Label()
		pv := iter.Value()
		pfield := field + ".params." + name
		if err := pv.Err(); err != nil {
			return nil, formatCUEError(err)
		}

		if text, err := pv.String(); err == nil {
			if err := checkAnnotation(text, pfield, pv); err != nil {
				return nil, err
			}
			params = append(params, schema.ReqText(name, text))
			continue
		}

		p, err := compileParamStruct(name, pv, pfield)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func compileParamStruct(name string, v cue.Value, field string) (schema.Param, error) {
	if v.IncompleteKind() != cue.StructKind {
		return schema.Param{}, &DefinitionError{
			Field:   field,
			Message: "parameter must be an annotation string or a struct",
			Pos:     v.Pos(),
		}
	}

	p := schema.Param{Name: name}

	kind, err := optionalString(v, "kind", field)
	if err != nil {
		return p, err
	}
	switch kind {
	case "", kindPositional:
		p.Kind = schema.Positional
	case kindVarPositional:
		p.Kind, p.HasDefault = schema.VarPositional, true
	case kindVarKeyword:
		p.Kind, p.HasDefault = schema.VarKeyword, true
	default:
		return p, &DefinitionError{
			Field:   field + ".kind",
			Message: fmt.Sprintf("unknown parameter kind %q", kind),
			Pos:     v.LookupPath(cue.ParsePath("kind")).Pos(),
		}
	}

	if p.Annotation, err = optionalString(v, "type", field); err != nil {
		return p, err
	}
	if p.Annotation != "" {
		if err := checkAnnotation(p.Annotation, field+".type", v.LookupPath(cue.ParsePath("type"))); err != nil {
			return p, err
		}
	}

	if v.LookupPath(cue.ParsePath("default")).Exists() {
		p.HasDefault = true
	}
	if optVal := v.LookupPath(cue.ParsePath("optional")); optVal.Exists() {
		optional, err := optVal.Bool()
		if err != nil {
			return p, &DefinitionError{Field: field + ".optional", Message: "optional must be a bool", Pos: optVal.Pos()}
		}
		p.HasDefault = p.HasDefault || optional
	}
	return p, nil
}

// checkAnnotation rejects annotation text outside the supported grammar
// at load time rather than at the first build.
func checkAnnotation(text, field string, v cue.Value) error {
	if _, err := typeexpr.Parse(text); err != nil {
		return &DefinitionError{Field: field, Message: err.Error(), Pos: v.Pos()}
	}
	return nil
}

func compileEnums(v cue.Value, field string) (map[string]schema.Type, error) {
	if !v.Exists() {
		return nil, nil
	}
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	locals := make(map[string]schema.Type)
	for iter.Next() {
		name := iter.Label()
		list, err := iter.Value().List()
		if err != nil {
			return nil, &DefinitionError{
				Field:   field + ".enums." + name,
				Message: "enum must be a list of member names",
				Pos:     iter.Value().Pos(),
			}
		}
		var members []string
		for list.Next() {
			m, err := list.Value().String()
			if err != nil {
				return nil, &DefinitionError{
					Field:   field + ".enums." + name,
					Message: "enum members must be strings",
					Pos:     list.Value().Pos(),
				}
			}
			members = append(members, m)
		}
		locals[name] = schema.EnumOf(name, members...)
	}
	return locals, nil
}
