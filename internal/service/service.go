// Package service holds the business rules of the catalogue.
//
// Every check-then-write runs inside one repository transaction so the
// existence and uniqueness checks see the same snapshot as the write.
// Expected failures are returned as *errs.HTTPError; anything else is a
// wrapped driver error for the global error handler to classify.
package service

import (
	"fmt"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/errs"
)

func notFound(resource string, id uint) error {
	return errs.NewNotFoundError(fmt.Sprintf("%s with id %d does not exist", resource, id), true, nil)
}

func conflict(format string, args ...any) error {
	return errs.NewConflictError(fmt.Sprintf(format, args...), nil)
}
