package cmd

import (
	"os"

	"github.com/felixgeelhaar/promptplay/internal/errors"
)

// inputFlags are the -f/-t pair shared by the text-driven workflows.
type inputFlags struct {
	file string
	text string
}

// read returns the file content when -f is set, the -t text otherwise.
func (in inputFlags) read() (string, error) {
	if in.file == "" {
		return in.text, nil
	}
	data, err := os.ReadFile(in.file)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewFileNotFoundError(in.file)
		}
		return "", errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read "+in.file, err)
	}
	return string(data), nil
}
