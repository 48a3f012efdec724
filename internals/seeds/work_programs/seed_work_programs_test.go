package workprograms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prisonsphere_backend/internals/features/programs/work_programs/model"
	"prisonsphere_backend/internals/helpers/testdb"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := testdb.New(t)

	n, err := SeedWorkPrograms(db)
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)

	_, err = SeedWorkPrograms(db)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.WorkProgramModel{}).Count(&count).Error)
	assert.EqualValues(t, 7, count)
}

func TestSeedSkipsBlankNames(t *testing.T) {
	db := testdb.New(t)
	n, err := SeedWorkProgramsFromJSON(db, []byte(`[{"name":"  ","description":"x"},{"name":"Bakery","description":"Bread"}]`))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = SeedWorkProgramsFromJSON(db, []byte(`{bad`))
	assert.Error(t, err)
}
