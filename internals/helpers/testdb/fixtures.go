package testdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	inmateModel "prisonsphere_backend/internals/features/inmates/inmates/model"
	paroleModel "prisonsphere_backend/internals/features/inmates/paroles/model"
	workModel "prisonsphere_backend/internals/features/programs/work_programs/model"
	userModel "prisonsphere_backend/internals/features/users/user/model"
)

// Inmate inserts an inmate row directly, bypassing the code generator.
func Inmate(t testing.TB, db *gorm.DB, code, status string) *inmateModel.InmateModel {
	t.Helper()
	in := &inmateModel.InmateModel{
		InmateCode:           code,
		InmateFirstName:      "John",
		InmateLastName:       "Doe " + code,
		InmateDateOfBirth:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		InmateGender:         inmateModel.GenderMale,
		InmateAdmissionDate:  time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		InmateSentenceMonths: 24,
		InmateCrimeDetails:   "Burglary",
		InmateAssignedCell:   "B-12",
		InmateStatus:         status,
	}
	require.NoError(t, db.Create(in).Error)
	return in
}

func Parole(t testing.TB, db *gorm.DB, in *inmateModel.InmateModel, status string, applied time.Time) *paroleModel.ParoleModel {
	t.Helper()
	p := &paroleModel.ParoleModel{
		ParoleInmateID:        in.InmateID,
		ParoleApplicationDate: applied,
		ParoleHearingDate:     applied.Add(30 * 24 * time.Hour),
		ParoleStatus:          status,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func WorkProgram(t testing.TB, db *gorm.DB, name string) *workModel.WorkProgramModel {
	t.Helper()
	wp := &workModel.WorkProgramModel{WorkProgramName: name, WorkProgramDescription: name + " program"}
	require.NoError(t, db.Create(wp).Error)
	return wp
}

// User inserts an active user with an already-hashed password.
func User(t testing.TB, db *gorm.DB, name, role, passwordHash string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{UserName: name, Password: passwordHash, Role: role, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}
