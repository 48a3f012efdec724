package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"prisonsphere_backend/internals/features/inmates/inmates/model"
)

const CodePrefix = "INM"

// FormatCode renders n as INM001, INM042, INM1000 ...
func FormatCode(n int) string {
	return fmt.Sprintf("%s%03d", CodePrefix, n)
}

// ParseCodeNumber returns the numeric suffix of a well-formed code.
func ParseCodeNumber(code string) (int, bool) {
	if !strings.HasPrefix(code, CodePrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(code, CodePrefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NextCode claims the next inmate code. Must run inside the registration
// transaction: the counter row stays locked until commit.
func NextCode(tx *gorm.DB) (string, error) {
	if err := ensureSequence(tx); err != nil {
		return "", err
	}

	var seq model.InmateSequenceModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sequence_prefix = ?", CodePrefix).
		First(&seq).Error; err != nil {
		return "", err
	}

	next := seq.SequenceValue + 1
	if err := tx.Model(&model.InmateSequenceModel{}).
		Where("sequence_prefix = ?", CodePrefix).
		Update("sequence_value", next).Error; err != nil {
		return "", err
	}
	return FormatCode(next), nil
}

// PeekCode returns the code the next registration would get, without claiming it.
func PeekCode(db *gorm.DB) (string, error) {
	var seq model.InmateSequenceModel
	err := db.Where("sequence_prefix = ?", CodePrefix).First(&seq).Error
	switch {
	case err == nil:
		return FormatCode(seq.SequenceValue + 1), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		highest, err := maxIssuedNumber(db)
		if err != nil {
			return "", err
		}
		return FormatCode(highest + 1), nil
	default:
		return "", err
	}
}

// ensureSequence seeds the counter from existing codes the first time. Concurrent
// seeders race on the primary key and the loser's insert is ignored.
func ensureSequence(tx *gorm.DB) error {
	var n int64
	if err := tx.Model(&model.InmateSequenceModel{}).
		Where("sequence_prefix = ?", CodePrefix).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	highest, err := maxIssuedNumber(tx)
	if err != nil {
		return err
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.InmateSequenceModel{SequencePrefix: CodePrefix, SequenceValue: highest}).Error
}

func maxIssuedNumber(db *gorm.DB) (int, error) {
	var codes []string
	if err := db.Model(&model.InmateModel{}).
		Where("inmate_code LIKE ?", CodePrefix+"%").
		Pluck("inmate_code", &codes).Error; err != nil {
		return 0, err
	}
	highest := 0
	for _, c := range codes {
		if n, ok := ParseCodeNumber(c); ok && n > highest {
			highest = n
		}
	}
	return highest, nil
}
