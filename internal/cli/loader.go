package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/tzcore/internal/compiler"
	"github.com/roach88/tzcore/internal/definition"
)

// LoadResult contains the zone definitions read from a path.
type LoadResult struct {
	Set       definition.Set
	FileCount int // Number of definition files read
}

// LoadError represents an error that occurred while loading definitions.
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

// LoadDefinitions reads zone definitions from path without validating them.
//
// A directory is loaded as one CUE package. A file is decoded by extension:
// .cue as CUE, .yaml or .yml as a YAML definitions document.
func LoadDefinitions(path string) (*LoadResult, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("definitions not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing definitions: %v", err)}
	}

	if info.IsDir() {
		return loadCUEDir(path)
	}

	switch filepath.Ext(path) {
	case ".cue":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
		}
		value := cuecontext.New().CompileBytes(data, cue.Filename(path))
		if err := value.Err(); err != nil {
			return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
		}
		return compileValue(value, 1)
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
		}
		defer f.Close()
		set, err := definition.DecodeYAML(f)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
		}
		return &LoadResult{Set: set, FileCount: 1}, nil
	default:
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("unsupported definitions file: %s", path)}
	}
}

func loadCUEDir(dir string) (*LoadResult, error) {
	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := cuecontext.New().BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}
	return compileValue(value, len(cueFiles))
}

func compileValue(value cue.Value, files int) (*LoadResult, error) {
	set, err := compiler.CompileZones(value)
	if err != nil {
		return nil, convertCompileError(err)
	}
	if len(set.Zones) == 0 {
		return nil, &LoadError{Code: ErrCodeNoZones, Message: "no zones found in definitions"}
	}
	return &LoadResult{Set: set, FileCount: files}, nil
}

// FindCUEFiles returns the .cue files directly inside dir, the files a
// package load of dir reads.
func FindCUEFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.cue"))
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    ErrCodeCompileFailed,
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
}

// Error code constants, unified across all CLI commands. Definition
// validation failures carry the Z1xx codes of the definition package.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeScanError     = "E002" // Directory scan error
	ErrCodeNoFiles       = "E003" // No definition files found
	ErrCodeLoadFailed    = "E004" // Load or decode failed
	ErrCodeNotFound      = "E005" // Path not found
	ErrCodeBuildFailed   = "E006" // CUE build failed
	ErrCodeWriteFailed   = "E007" // File write error
	ErrCodeCompileFailed = "E008" // CUE zone did not compile
	ErrCodeNoZones       = "E009" // No zones defined
	ErrCodeUnknownZone   = "E010" // Zone ID not defined
	ErrCodeInvalidArg    = "E011" // Malformed instant, local date-time or flag
	ErrCodeInvalidZone   = "E012" // Zone failed validation
	ErrCodeDatabase      = "E013" // Store error
)

// loadZone loads path and returns the named zone once it validates.
func loadZone(path, zoneID string, formatter *OutputFormatter) (definition.Zone, error) {
	result, err := LoadDefinitions(path)
	if err != nil {
		return definition.Zone{}, loadFailure(formatter, err)
	}
	formatter.VerboseLog("Loaded %d zone(s) from %d file(s) in %s", len(result.Set.Zones), result.FileCount, path)

	z, ok := result.Set.Lookup(zoneID)
	if !ok {
		return definition.Zone{}, commandError(formatter, ErrCodeUnknownZone, fmt.Sprintf("zone %q not defined in %s", zoneID, path))
	}
	if errs := definition.Validate(z); len(errs) > 0 {
		return definition.Zone{}, commandError(formatter, ErrCodeInvalidZone, definition.AsError(errs).Error())
	}
	return z, nil
}

// loadFailure reports a LoadDefinitions error and converts it to an
// ExitError.
func loadFailure(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		msg := loadErr.Message
		if loadErr.Pos.IsValid() {
			msg = fmt.Sprintf("%s:%d:%d: %s", loadErr.Pos.Filename(), loadErr.Pos.Line(), loadErr.Pos.Column(), msg)
		}
		return commandError(formatter, loadErr.Code, msg)
	}
	return commandError(formatter, ErrCodeGeneric, err.Error())
}

// commandError prints an error and returns an ExitError with
// ExitCommandError.
func commandError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}
