package workprograms

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"prisonsphere_backend/internals/features/programs/work_programs/model"
)

//go:embed data_work_programs.json
var catalog []byte

type WorkProgramSeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SeedWorkPrograms inserts the default catalog. Existing names are left alone.
func SeedWorkPrograms(db *gorm.DB) (int64, error) {
	return SeedWorkProgramsFromJSON(db, catalog)
}

func SeedWorkProgramsFromJSON(db *gorm.DB, raw []byte) (int64, error) {
	var seeds []WorkProgramSeed
	if err := sonic.Unmarshal(raw, &seeds); err != nil {
		return 0, fmt.Errorf("decode work program seeds: %w", err)
	}

	rows := make([]model.WorkProgramModel, 0, len(seeds))
	for _, s := range seeds {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		rows = append(rows, model.WorkProgramModel{
			WorkProgramName:        name,
			WorkProgramDescription: strings.TrimSpace(s.Description),
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "work_program_name"}},
		DoNothing: true,
	}).Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	zap.L().Info("work programs seeded", zap.Int64("inserted", res.RowsAffected), zap.Int("catalog", len(rows)))
	return res.RowsAffected, nil
}
