package grading

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradebook-api/internal/models"
)

const delta = 1e-9

func subject(code string, credits float64, mt1, mt2, end float64) models.SubjectGrade {
	return models.SubjectGrade{
		Code:        code,
		Name:        code,
		Credits:     credits,
		Assessments: models.AssessmentBreakdown{Midterms: []float64{mt1, mt2}, EndSem: end},
	}
}

func TestComputeSubjectDefaultWeights(t *testing.T) {
	got := ComputeSubject(subject("MA101", 4, 72, 78, 81), models.DefaultGradeConfig())

	require.NotNil(t, got.TotalScore)
	require.NotNil(t, got.GradePoints)
	assert.InDelta(t, 78.6, *got.TotalScore, delta)
	assert.InDelta(t, 7.86, *got.GradePoints, delta)
	assert.Equal(t, "MA101", got.Code)
	assert.Equal(t, 4.0, got.Credits)
}

func TestComputeSubjectDoesNotMutateInput(t *testing.T) {
	in := subject("CS101", 4, 85, 90, 88)
	out := ComputeSubject(in, models.DefaultGradeConfig())

	assert.Nil(t, in.TotalScore)
	assert.Nil(t, in.GradePoints)
	out.Assessments.Midterms[0] = 0
	assert.Equal(t, 85.0, in.Assessments.Midterms[0])
}

func TestComputeSubjectIgnoresStaleDerivedFields(t *testing.T) {
	in := subject("PH101", 3, 68, 74, 79)
	in.TotalScore = models.Float(12)
	in.GradePoints = models.Float(9.9)

	out := ComputeSubject(in, models.DefaultGradeConfig())
	assert.InDelta(t, 75.8, *out.TotalScore, delta)
	assert.InDelta(t, 7.58, *out.GradePoints, delta)
}

func TestComputeSubjectUnnormalisedWeights(t *testing.T) {
	cfg := models.GradeConfig{MidtermWeights: []float64{1, 1}, EndSemWeight: 3}
	out := ComputeSubject(subject("X", 1, 72, 78, 81), cfg)
	assert.InDelta(t, 78.6, *out.TotalScore, delta)
}

func TestComputeSubjectMismatchedLengths(t *testing.T) {
	cfg := models.DefaultGradeConfig()

	extraScore := models.SubjectGrade{Credits: 1, Assessments: models.AssessmentBreakdown{Midterms: []float64{50, 50, 100}, EndSem: 50}}
	assert.InDelta(t, 50.0, *ComputeSubject(extraScore, cfg).TotalScore, delta)

	missingScore := models.SubjectGrade{Credits: 1, Assessments: models.AssessmentBreakdown{Midterms: []float64{100}, EndSem: 100}}
	assert.InDelta(t, 80.0, *ComputeSubject(missingScore, cfg).TotalScore, delta)

	noMidterms := models.SubjectGrade{Credits: 1, Assessments: models.AssessmentBreakdown{EndSem: 90}}
	assert.InDelta(t, 54.0, *ComputeSubject(noMidterms, cfg).TotalScore, delta)
}

func TestComputeSubjectDegenerateWeights(t *testing.T) {
	cfg := models.GradeConfig{MidtermWeights: []float64{0, 0}, EndSemWeight: 0}
	for _, s := range []models.SubjectGrade{
		subject("A", 4, 72, 78, 81),
		subject("B", 3, 100, 100, 100),
		subject("C", 2, -5, 300, 0),
	} {
		out := ComputeSubject(s, cfg)
		assert.Equal(t, 0.0, *out.TotalScore)
		assert.Equal(t, 0.0, *out.GradePoints)
		assert.False(t, math.IsNaN(*out.TotalScore))
	}

	negative := models.GradeConfig{MidtermWeights: []float64{-0.5}, EndSemWeight: 0.25}
	assert.Equal(t, 0.0, *ComputeSubject(subject("D", 1, 80, 80, 80), negative).TotalScore)
}

func TestComputeSubjectWeightScalingInvariance(t *testing.T) {
	base := models.GradeConfig{MidtermWeights: []float64{0.15, 0.25}, EndSemWeight: 0.6}
	subjects := []models.SubjectGrade{
		subject("A", 4, 72, 78, 81),
		subject("B", 3, 33.3, 91.7, 64.2),
		subject("C", 2, 0, 100, 55),
	}
	for _, k := range []float64{0.5, 2, 10, 1234.5} {
		scaled := models.GradeConfig{MidtermWeights: []float64{0.15 * k, 0.25 * k}, EndSemWeight: 0.6 * k}
		for _, s := range subjects {
			want := ComputeSubject(s, base)
			got := ComputeSubject(s, scaled)
			assert.InDelta(t, *want.TotalScore, *got.TotalScore, delta, "k=%v subject=%s", k, s.Code)
			assert.InDelta(t, *want.GradePoints, *got.GradePoints, delta, "k=%v subject=%s", k, s.Code)
		}
	}
}

func TestComputeSubjectMonotonic(t *testing.T) {
	cfg := models.GradeConfig{MidtermWeights: []float64{0.1, 0.3}, EndSemWeight: 0.6}
	base := subject("M", 3, 40, 50, 60)

	for slot := 0; slot < 3; slot++ {
		prev := *ComputeSubject(base, cfg).TotalScore
		for _, bump := range []float64{0.01, 1, 7.5, 25, 80} {
			bumped := subject("M", 3, 40, 50, 60)
			switch slot {
			case 0:
				bumped.Assessments.Midterms[0] += bump
			case 1:
				bumped.Assessments.Midterms[1] += bump
			default:
				bumped.Assessments.EndSem += bump
			}
			got := *ComputeSubject(bumped, cfg).TotalScore
			assert.GreaterOrEqual(t, got, prev, "slot %d bump %v", slot, bump)
			prev = got
		}
	}
}

func TestScoreToGP(t *testing.T) {
	cases := map[float64]float64{
		-20:   0,
		0:     0,
		45.55: 4.56,
		78.6:  7.86,
		100:   10,
		120:   10,
		99.94: 9.99,
	}
	for score, want := range cases {
		assert.InDelta(t, want, ScoreToGP(score), delta, "score %v", score)
	}
}

func TestScoreToGPBoundsAndMonotonic(t *testing.T) {
	prev := ScoreToGP(-50)
	for score := -50.0; score <= 150; score += 0.37 {
		gp := ScoreToGP(score)
		assert.GreaterOrEqual(t, gp, 0.0)
		assert.LessOrEqual(t, gp, MaxGradePoints)
		assert.GreaterOrEqual(t, gp, prev)
		prev = gp
	}
}

func TestComputeSemesterCreditWeighted(t *testing.T) {
	sem := models.SemesterGrades{
		SemesterNumber: 1,
		Subjects: []models.SubjectGrade{
			subject("MA101", 4, 72, 78, 81),
			subject("XX100", 3, 60, 60, 60),
		},
	}
	out := ComputeSemester(sem, models.DefaultGradeConfig())

	require.Len(t, out.Subjects, 2)
	assert.InDelta(t, 7.86, *out.Subjects[0].GradePoints, delta)
	assert.InDelta(t, 6.0, *out.Subjects[1].GradePoints, delta)
	assert.InDelta(t, 7.06, *out.SemesterGPA, delta)
	assert.Equal(t, 1, out.SemesterNumber)
	assert.Equal(t, "MA101", out.Subjects[0].Code)
	assert.Equal(t, "XX100", out.Subjects[1].Code)
	assert.Nil(t, sem.SemesterGPA)
}

func TestComputeSemesterEqualGradePoints(t *testing.T) {
	for _, credits := range [][]float64{{1, 1, 1}, {4, 3, 2}, {0.5, 7, 1}} {
		sem := models.SemesterGrades{SemesterNumber: 2}
		for i, c := range credits {
			sem.Subjects = append(sem.Subjects, subject(string(rune('A'+i)), c, 70, 80, 75))
		}
		out := ComputeSemester(sem, models.DefaultGradeConfig())
		assert.InDelta(t, *out.Subjects[0].GradePoints, *out.SemesterGPA, delta)
	}
}

func TestComputeSemesterEmpty(t *testing.T) {
	out := ComputeSemester(models.SemesterGrades{SemesterNumber: 3, Subjects: []models.SubjectGrade{}}, models.DefaultGradeConfig())
	require.NotNil(t, out.SemesterGPA)
	assert.Equal(t, 0.0, *out.SemesterGPA)
	assert.Empty(t, out.Subjects)
}

func TestComputeSemesterZeroCredits(t *testing.T) {
	sem := models.SemesterGrades{Subjects: []models.SubjectGrade{subject("Z", 0, 90, 90, 90)}}
	out := ComputeSemester(sem, models.DefaultGradeConfig())
	assert.Equal(t, 0.0, *out.SemesterGPA)
	assert.InDelta(t, 9.0, *out.Subjects[0].GradePoints, delta)
}

func TestComputeCGPA(t *testing.T) {
	cfg := models.DefaultGradeConfig()
	semesters := []models.SemesterGrades{
		ComputeSemester(models.SemesterGrades{SemesterNumber: 1, Subjects: []models.SubjectGrade{subject("A", 4, 72, 78, 81)}}, cfg),
		ComputeSemester(models.SemesterGrades{SemesterNumber: 2, Subjects: []models.SubjectGrade{subject("B", 3, 60, 60, 60)}}, cfg),
	}
	assert.InDelta(t, 7.06, ComputeCGPA(semesters), delta)
	assert.Equal(t, 0.0, ComputeCGPA(nil))
	assert.Equal(t, 0.0, ComputeCGPA([]models.SemesterGrades{{SemesterNumber: 1}}))
}

func seededRecord() models.StudentGradesRecord {
	return models.StudentGradesRecord{
		UserID: "stu1",
		Semesters: []models.SemesterGrades{
			{SemesterNumber: 1, Subjects: []models.SubjectGrade{
				subject("MA101", 4, 72, 78, 81),
				subject("PH101", 3, 68, 74, 79),
				subject("CS101", 4, 85, 90, 88),
			}},
			{SemesterNumber: 2, Subjects: []models.SubjectGrade{
				subject("EE102", 3, 70, 73, 80),
				subject("HS102", 2, 88, 84, 86),
				subject("CS102", 4, 79, 82, 85),
			}},
		},
	}
}

func TestComputeAll(t *testing.T) {
	out := ComputeAll(seededRecord(), models.DefaultGradeConfig())

	assert.Equal(t, "stu1", out.UserID)
	require.Len(t, out.Semesters, 2)
	// 4*7.86 + 3*7.58 + 4*8.78 = 89.30 over 11 credits
	assert.InDelta(t, 8.12, *out.Semesters[0].SemesterGPA, delta)
	// 3*7.66 + 2*8.6 + 4*8.32 = 73.46 over 9 credits
	assert.InDelta(t, 8.16, *out.Semesters[1].SemesterGPA, delta)
	// 162.76 over 20 credits
	assert.InDelta(t, 8.14, *out.CGPA, delta)
}

func TestComputeAllIdempotent(t *testing.T) {
	cfgs := []models.GradeConfig{
		models.DefaultGradeConfig(),
		{MidtermWeights: []float64{0.3, 0.1}, EndSemWeight: 0.45},
		{MidtermWeights: []float64{0, 0}, EndSemWeight: 0},
		{MidtermWeights: []float64{1}, EndSemWeight: 2},
	}
	for _, cfg := range cfgs {
		once := ComputeAll(seededRecord(), cfg)
		twice := ComputeAll(once, cfg)
		assert.Equal(t, once, twice)
	}
}

func TestComputeAllEmptyRecord(t *testing.T) {
	out := ComputeAll(models.StudentGradesRecord{UserID: "stu9"}, models.DefaultGradeConfig())
	assert.Equal(t, 0.0, *out.CGPA)
	assert.Empty(t, out.Semesters)
}
