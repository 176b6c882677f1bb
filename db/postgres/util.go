package postgres

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/suxatcode/gravity-particles/db"
)

// parseRunID maps ids that can not belong to a row to db.ErrRunNotFound.
func parseRunID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil || id == 0 {
		return 0, errors.Wrapf(db.ErrRunNotFound, "run '%s'", s)
	}
	return uint(id), nil
}

func formatRunID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
