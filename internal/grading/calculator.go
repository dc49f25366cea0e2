// Package grading turns raw assessment scores into subject totals, grade
// points, semester GPA and cumulative GPA. Every function here is pure: the
// grading policy is passed in explicitly and inputs are never mutated.
package grading

import (
	"math"

	"github.com/noah-isme/gradebook-api/internal/models"
)

// MaxGradePoints is the top of the grade point scale.
const MaxGradePoints = 10.0

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ScoreToGP maps a 0-100 score linearly onto 0-10 grade points. Scores
// outside the range clamp at the boundary.
func ScoreToGP(score float64) float64 {
	gp := score / 100 * MaxGradePoints
	gp = math.Max(0, math.Min(MaxGradePoints, gp))
	return round2(gp)
}

// normalizedWeights returns the midterm and end-semester weights scaled to
// sum to 1. A non-positive total yields all-zero weights instead of dividing
// by zero.
func normalizedWeights(cfg models.GradeConfig) ([]float64, float64) {
	total := TotalWeight(cfg)
	mid := make([]float64, len(cfg.MidtermWeights))
	if total <= 0 {
		return mid, 0
	}
	for i, w := range cfg.MidtermWeights {
		mid[i] = w / total
	}
	return mid, cfg.EndSemWeight / total
}

// ComputeSubject recomputes TotalScore and GradePoints for one subject.
// Midterm scores pair with weights by index; an unmatched score or weight
// contributes nothing.
func ComputeSubject(subject models.SubjectGrade, cfg models.GradeConfig) models.SubjectGrade {
	normMid, normEnd := normalizedWeights(cfg)

	midScore := 0.0
	for i, score := range subject.Assessments.Midterms {
		if i >= len(normMid) {
			break
		}
		midScore += score * normMid[i]
	}
	endScore := subject.Assessments.EndSem * normEnd

	total := round2(midScore + endScore)
	gp := ScoreToGP(total)

	out := subject
	out.Assessments.Midterms = append([]float64(nil), subject.Assessments.Midterms...)
	out.TotalScore = models.Float(total)
	out.GradePoints = models.Float(gp)
	return out
}

// creditWeighted returns Σ(gradePoints·credits) and the raw Σcredits.
func creditWeighted(subjects []models.SubjectGrade) (float64, float64) {
	weighted, credits := 0.0, 0.0
	for _, s := range subjects {
		weighted += models.Value(s.GradePoints) * s.Credits
		credits += s.Credits
	}
	return weighted, credits
}

// creditFloor floors a zero credit sum at 1 so empty collections report 0
// rather than NaN. The floor is a display convenience, not a grading rule.
func creditFloor(credits float64) float64 {
	if credits == 0 {
		return 1
	}
	return credits
}

// ComputeSemester recomputes every subject and the credit-weighted semester GPA.
func ComputeSemester(semester models.SemesterGrades, cfg models.GradeConfig) models.SemesterGrades {
	subjects := make([]models.SubjectGrade, len(semester.Subjects))
	for i, s := range semester.Subjects {
		subjects[i] = ComputeSubject(s, cfg)
	}
	weighted, credits := creditWeighted(subjects)

	out := semester
	out.Subjects = subjects
	out.SemesterGPA = models.Float(round2(weighted / creditFloor(credits)))
	return out
}

// ComputeCGPA returns the credit-weighted mean of grade points over every
// subject of every semester. Semesters are expected to be computed already.
func ComputeCGPA(semesters []models.SemesterGrades) float64 {
	weighted, credits := 0.0, 0.0
	for _, sem := range semesters {
		w, c := creditWeighted(sem.Subjects)
		weighted += w
		credits += c
	}
	return round2(weighted / creditFloor(credits))
}

// ComputeAll recomputes every derived field of a record under cfg. It is
// idempotent: derived inputs are ignored.
func ComputeAll(record models.StudentGradesRecord, cfg models.GradeConfig) models.StudentGradesRecord {
	semesters := make([]models.SemesterGrades, len(record.Semesters))
	for i, sem := range record.Semesters {
		semesters[i] = ComputeSemester(sem, cfg)
	}

	out := record
	out.Semesters = semesters
	out.CGPA = models.Float(ComputeCGPA(semesters))
	return out
}
