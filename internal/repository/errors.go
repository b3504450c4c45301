package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when an insert hits an existing row.
	ErrAlreadyExists = errors.New("already exists")
)

func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
