package services

import (
	"errors"
	"fmt"

	"github.com/asg0d/billboards-live/internal/types"
	"gorm.io/gorm"
)

// translateDBError maps GORM errors onto the typed API errors. Relies on
// gorm's TranslateError mode for dialect-independent duplicate-key and
// foreign-key detection.
func translateDBError(err error, entity string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return types.NewNotFoundError(fmt.Sprintf("%s not found", entity))
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return types.NewConstraintError(fmt.Sprintf("%s violates a uniqueness constraint", entity))
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return types.NewConstraintError(fmt.Sprintf("%s references a missing record", entity))
	}
	return err
}
