package schema

import "fmt"

func sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func ptr[T any](v T) *T {
	return &v
}
