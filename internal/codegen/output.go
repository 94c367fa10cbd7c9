package codegen

import (
	"os"

	"infinity/internal/diag"
)

// WriteFile writes generated assembly to path, replacing any existing file
func WriteFile(path, assembly string) error {
	f, err := os.Create(path)
	if err != nil {
		return diag.Errorf(diag.IO, "could not create output file %s: %v", path, err)
	}
	if _, err := f.WriteString(assembly); err != nil {
		f.Close()
		return diag.Errorf(diag.IO, "could not write output file %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		return diag.Errorf(diag.IO, "could not write output file %s: %v", path, err)
	}
	return nil
}
