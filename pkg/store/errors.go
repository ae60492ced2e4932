package store

import (
	"database/sql"
	"errors"

	"github.com/quatton/metashare/pkg/mserr"
)

// notFound maps sql.ErrNoRows onto the typed not-found error for kind and
// passes every other error through.
func notFound(err error, kind string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return mserr.NotFound(kind)
	}
	return err
}

// requireAffected turns an update/delete that matched no rows into a
// not-found error.
func requireAffected(res sql.Result, err error, kind string) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mserr.NotFound(kind)
	}
	return nil
}
