package employee

import (
	"context"
	"errors"

	employeeerrors "go-hris-leave/internal/employee/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	return err
}

// EnsureActive fails with EmployeeNotFoundOrInactive unless id names an
// ACTIVE employee.
func EnsureActive(ctx context.Context, dir Directory, id string) error {
	active, err := dir.IsActive(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if !active {
		return employeeerrors.ErrEmployeeNotFoundOrInactive
	}
	return nil
}

// Lookup returns the directory row or EmployeeNotFound.
func Lookup(ctx context.Context, dir Directory, id string) (*Employee, error) {
	empl, err := dir.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return empl, nil
}

// Lock takes the employee row lock inside dir's transaction.
func Lock(ctx context.Context, dir Directory, id string) (*Employee, error) {
	empl, err := dir.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return empl, nil
}

// LockActive is EnsureActive under the employee row lock.
func LockActive(ctx context.Context, dir Directory, id string) error {
	empl, err := Lock(ctx, dir, id)
	if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
		return employeeerrors.ErrEmployeeNotFoundOrInactive
	}
	if err != nil {
		return err
	}
	if !empl.IsActive() {
		return employeeerrors.ErrEmployeeNotFoundOrInactive
	}
	return nil
}
