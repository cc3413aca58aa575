package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue/token"

	"github.com/roach88/deploykit/internal/catalog"
	"github.com/roach88/deploykit/internal/cuedef"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE or YAML files found
	ErrCodeLoadFailed  = "E004" // Schema definitions failed to load
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // Parameter spec could not be derived
	ErrCodeWriteFailed = "E007" // Ledger write error
	ErrCodeUnknownKind = "E008" // Kind not in the catalog
	ErrCodeParseFailed = "E009" // Resource YAML could not be decoded
)

// LoadError represents an error that occurred while loading schemas or
// resource files.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadCatalog returns the built-in catalog, extended with the classes and
// kinds declared in schemasDir when it is non-empty.
func LoadCatalog(schemasDir string) (*catalog.Catalog, error) {
	cat := catalog.Default()
	if schemasDir == "" {
		return cat, nil
	}

	if err := checkDir(schemasDir, "schemas"); err != nil {
		return nil, err
	}
	files, err := cuedef.FindFiles(schemasDir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", schemasDir)}
	}

	defs, err := cuedef.Load(schemasDir, cat.Registry())
	if err != nil {
		return nil, convertDefinitionError(err)
	}
	for _, k := range defs.Kinds {
		err := cat.Add(catalog.Kind{
			Name:          k.Name,
			Folder:        k.Folder,
			Root:          k.Root,
			IdentifierKey: k.IdentifierKey,
			DataSetLinked: k.DataSetLinked,
		})
		if err != nil {
			return nil, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
		}
	}
	return cat, nil
}

// FindResourceFiles walks dir and returns every YAML file path in lexical
// order.
func FindResourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// isConfigFile reports whether path is an environment config file such as
// config.dev.yaml.
func isConfigFile(path string) bool {
	return strings.HasPrefix(filepath.Base(path), "config.")
}

func checkDir(dir, what string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("%s directory not found: %s", what, dir)}
	}
	if err != nil {
		return &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing %s directory: %v", what, err)}
	}
	if !info.IsDir() {
		return &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}
	return nil
}

// convertDefinitionError converts a definition error to a LoadError with
// position info.
func convertDefinitionError(err error) *LoadError {
	var defErr *cuedef.DefinitionError
	if errors.As(err, &defErr) {
		return &LoadError{
			Code:    ErrCodeLoadFailed,
			Message: fmt.Sprintf("%s: %s", defErr.Field, defErr.Message),
			Pos:     defErr.Pos,
		}
	}
	return &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
}

// commandError reports err through the formatter and returns the matching
// exit error.
func commandError(f *OutputFormatter, err error) error {
	e := CLIError{Code: ErrCodeGeneric, Message: err.Error()}
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		e.Code, e.Message = loadErr.Code, loadErr.Message
		if loadErr.Pos.IsValid() {
			e.Position = fmt.Sprintf("%s:%d:%d", loadErr.Pos.Filename(), loadErr.Pos.Line(), loadErr.Pos.Column())
		}
	}
	_ = f.Error(e)
	if e.Position != "" {
		return NewExitError(ExitCommandError, e.Position+": "+e.Message)
	}
	return NewExitError(ExitCommandError, e.Message)
}
