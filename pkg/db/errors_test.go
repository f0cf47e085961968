package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestWrapErrorPassthrough(t *testing.T) {
	for _, e := range []error{
		nil,
		fmt.Errorf("foo"),
		errors.New("bar"),
	} {
		if err := WrapError(e); err != e { //nolint:errorlint
			t.Errorf("WrapError(%v) => %v, want %v", e, err, e)
		}
	}
}

func TestWrapErrorNoRows(t *testing.T) {
	if err := WrapError(sql.ErrNoRows); err != ErrRecordNotFound {
		t.Errorf("WrapError(sql.ErrNoRows) => %v, want %v", err, ErrRecordNotFound)
	}
}

func TestWrapErrorPostgresUniqueViolation(t *testing.T) {
	e := &pq.Error{Code: "23505"}
	if err := WrapError(e); err != ErrDuplicateKey {
		t.Errorf("WrapError(%v) => %v, want %v", e, err, ErrDuplicateKey)
	}
}
