package services

import (
	"errors"
	"strings"

	"propertymanager/internal/common"
	"propertymanager/internal/repositories"
)

// repoError converts repository sentinels into client-facing AppErrors.
// Foreign key violations on writes mean a referenced row is missing.
func repoError(resource, operation string, err error) error {
	var appErr *common.AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, repositories.ErrNotFound):
		return common.NotFound(resource)
	case errors.Is(err, repositories.ErrUniqueViolation):
		return common.Conflict(resource+" already exists", err)
	case errors.Is(err, repositories.ErrForeignKeyViolation):
		return common.ValidationFailure("Referenced record does not exist", err)
	default:
		return common.Unexpected(operation, err)
	}
}

// deleteError differs from repoError in that a foreign key violation means
// other rows still reference the one being deleted.
func deleteError(resource string, err error) error {
	if errors.Is(err, repositories.ErrForeignKeyViolation) {
		return common.Conflict(resource+" is still referenced by other records", err)
	}
	return repoError(resource, "delete "+strings.ToLower(resource), err)
}
