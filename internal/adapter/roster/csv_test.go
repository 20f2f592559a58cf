package roster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
)

func TestRead(t *testing.T) {
	in := "\ufeffEnrollment,Name,Section,Course,ImageURL\n" +
		"21, Arman ,A,CS,https://drive.google.com/open?id=abc\n" +
		",skipped,,,\n" +
		"210,Dana,B,CS,\n"

	students, err := Read(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []models.Student{
		{Enrollment: "21", Name: "Arman", Section: "A", Course: "CS", ImageURL: "https://drive.google.com/open?id=abc"},
		{Enrollment: "210", Name: "Dana", Section: "B", Course: "CS"},
	}, students)
}

func TestRead_ColumnOrderAndOptional(t *testing.T) {
	students, err := Read(strings.NewReader("name,enrollment\nArman,21\n"))
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "21", students[0].Enrollment)
	assert.Equal(t, "Arman", students[0].Name)
	assert.Empty(t, students[0].ImageURL)
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(strings.NewReader("Enrollment,Section\n21,A\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = Read(strings.NewReader("Enrollment,Name\n21,A\n21,B\n"))
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = Read(strings.NewReader(""))
	assert.Error(t, err)
}
