package seeds

import (
	"gorm.io/gorm"

	users "prisonsphere_backend/internals/seeds/users"
	workprograms "prisonsphere_backend/internals/seeds/work_programs"
)

// RunAllSeeds loads the work-program catalog and, when usersFile is set, the
// staff accounts listed in it.
func RunAllSeeds(db *gorm.DB, usersFile string) error {
	if _, err := workprograms.SeedWorkPrograms(db); err != nil {
		return err
	}
	if usersFile == "" {
		return nil
	}
	_, err := users.SeedUsersFromJSON(db, usersFile)
	return err
}
