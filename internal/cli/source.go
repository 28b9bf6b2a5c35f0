package cli

import (
	"fmt"
	"os"
)

// SourceError is a coded failure to load the input file.
type SourceError struct {
	Code    string
	Message string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ReadSource loads the Rust input file, mapping stat and read failures to
// coded errors.
func ReadSource(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &SourceError{Code: ErrCodeNotFound, Message: fmt.Sprintf("input file not found: %s", path)}
	}
	if err != nil {
		return nil, &SourceError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("error accessing input file: %v", err)}
	}
	if info.IsDir() {
		return nil, &SourceError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a file: %s", path)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("error reading input file: %v", err)}
	}
	return data, nil
}
