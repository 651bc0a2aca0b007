package values

import (
	"fmt"
	"strings"
)

// DefaultModuleName is the shader module compiled when none is given.
const DefaultModuleName = "core"

// ModuleName identifies a shader module: a subdirectory of the shaders
// resource root holding one vertex shader, one fragment shader and a
// varying-definitions file.
type ModuleName struct {
	value string
}

// NewModuleName creates a ModuleName with validation.
// Names are trimmed and lower-cased.
func NewModuleName(name string) (ModuleName, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ModuleName{}, fmt.Errorf("module name cannot be empty")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ModuleName{}, fmt.Errorf("module name %q must be a single directory name", name)
	}
	return ModuleName{value: name}, nil
}

// ModuleNameFromDir accepts a directory name found under the shaders
// directory as a module. Hidden directories are rejected, as are names that
// lower-casing would change, since the module's sources are looked up under
// the lower-cased name.
func ModuleNameFromDir(dir string) (ModuleName, error) {
	if strings.HasPrefix(dir, ".") {
		return ModuleName{}, fmt.Errorf("directory %q is hidden", dir)
	}
	name, err := NewModuleName(dir)
	if err != nil {
		return ModuleName{}, err
	}
	if name.String() != dir {
		return ModuleName{}, fmt.Errorf("directory %q is not a lower-case module name", dir)
	}
	return name, nil
}

// MustNewModuleName creates a ModuleName or panics
func MustNewModuleName(name string) ModuleName {
	mn, err := NewModuleName(name)
	if err != nil {
		panic(err)
	}
	return mn
}

// String returns the string representation
func (m ModuleName) String() string {
	return m.value
}

// IsEmpty returns true if this is the zero value
func (m ModuleName) IsEmpty() bool {
	return m.value == ""
}

// Equals checks if two module names are equal
func (m ModuleName) Equals(other ModuleName) bool {
	return m.value == other.value
}

// MarshalText implements encoding.TextMarshaler
func (m ModuleName) MarshalText() ([]byte, error) {
	return []byte(m.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *ModuleName) UnmarshalText(data []byte) error {
	name, err := NewModuleName(string(data))
	if err != nil {
		return err
	}
	*m = name
	return nil
}
