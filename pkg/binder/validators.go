package binder

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// dirpathValidator rejects paths that no filesystem accepts. The empty string
// is allowed because it selects the default directory.
func dirpathValidator(fl validator.FieldLevel) bool {
	return !strings.ContainsRune(fl.Field().String(), 0)
}
