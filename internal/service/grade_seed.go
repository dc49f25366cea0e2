package service

import "github.com/noah-isme/gradebook-api/internal/models"

type seedSubject struct {
	code     string
	name     string
	credits  float64
	midterms []float64
	endSem   float64
}

var seedSemesters = [][]seedSubject{
	{
		{"MA101", "Calculus", 4, []float64{72, 78}, 81},
		{"PH101", "Physics", 3, []float64{68, 74}, 79},
		{"CS101", "Programming", 4, []float64{85, 90}, 88},
	},
	{
		{"EE102", "Basic Electrical", 3, []float64{70, 73}, 80},
		{"HS102", "English", 2, []float64{88, 84}, 86},
		{"CS102", "Data Structures", 4, []float64{79, 82}, 85},
	},
}

// seedRecord builds the demonstration record given to students without one.
// Derived fields are left empty.
func seedRecord(userID string) models.StudentGradesRecord {
	record := models.StudentGradesRecord{UserID: userID, Semesters: make([]models.SemesterGrades, 0, len(seedSemesters))}
	for i, subjects := range seedSemesters {
		sem := models.SemesterGrades{SemesterNumber: i + 1, Subjects: make([]models.SubjectGrade, 0, len(subjects))}
		for _, s := range subjects {
			sem.Subjects = append(sem.Subjects, models.SubjectGrade{
				Code:    s.code,
				Name:    s.name,
				Credits: s.credits,
				Assessments: models.AssessmentBreakdown{
					Midterms: append([]float64(nil), s.midterms...),
					EndSem:   s.endSem,
				},
			})
		}
		record.Semesters = append(record.Semesters, sem)
	}
	return record
}
