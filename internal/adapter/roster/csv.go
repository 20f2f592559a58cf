package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
)

var (
	ErrMissingColumn = errors.New("roster is missing a required column")
	ErrDuplicate     = errors.New("duplicate enrollment number")
)

// required header names, matched case-insensitively
const (
	colEnrollment = "enrollment"
	colName       = "name"
	colSection    = "section"
	colCourse     = "course"
	colImageURL   = "imageurl"
)

// Read parses a roster CSV with the header Enrollment,Name,Section,Course,ImageURL.
// Column order is free; Section, Course and ImageURL may be absent.
func Read(r io.Reader) ([]models.Student, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		key = strings.ReplaceAll(key, "_", "")
		idx[key] = i
	}
	for _, c := range []string{colEnrollment, colName} {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	field := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var (
		students []models.Student
		seen     = make(map[string]int)
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		s := models.Student{
			Enrollment: field(rec, colEnrollment),
			Name:       field(rec, colName),
			Section:    field(rec, colSection),
			Course:     field(rec, colCourse),
			ImageURL:   field(rec, colImageURL),
		}
		if s.Enrollment == "" {
			continue
		}
		if prev, ok := seen[s.Enrollment]; ok {
			return nil, fmt.Errorf("line %d: %w %s (first on line %d)", line, ErrDuplicate, s.Enrollment, prev)
		}
		seen[s.Enrollment] = line
		students = append(students, s)
	}

	return students, nil
}
