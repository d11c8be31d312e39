package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// getOrCreate loads the row matching conds into dest, inserting dest when no
// such row exists. The insert runs inside a savepoint so that losing a race
// to a concurrent writer only discards that insert; the winner's row is then
// read back. created is false whenever dest holds a row that already existed.
func getOrCreate(tx *gorm.DB, dest any, conds map[string]any) (created bool, err error) {
	err = tx.Where(conds).Take(dest).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	err = tx.Transaction(func(sp *gorm.DB) error {
		return sp.Omit(clause.Associations).Create(dest).Error
	})
	if err == nil {
		return true, nil
	}
	if !isDuplicateKey(err) {
		return false, err
	}

	log.Debug().Err(err).Interface("conds", conds).Msg("unique race lost, reading winner")
	if err := tx.Where(conds).Take(dest).Error; err != nil {
		return false, err
	}
	return false, nil
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
