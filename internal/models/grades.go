package models

// GradeConfig is the global grading policy. Weights are ratios: the engine
// normalises by their sum, so stored values need not add up to 1.
type GradeConfig struct {
	MidtermWeights []float64 `json:"midtermWeights"`
	EndSemWeight   float64   `json:"endSemWeight"`
}

// DefaultGradeConfig returns the built-in policy: two midterms at 20% each
// and the end-semester exam at 60%.
func DefaultGradeConfig() GradeConfig {
	return GradeConfig{MidtermWeights: []float64{0.2, 0.2}, EndSemWeight: 0.6}
}

// Clone returns a deep copy of the config.
func (c GradeConfig) Clone() GradeConfig {
	out := c
	out.MidtermWeights = append([]float64(nil), c.MidtermWeights...)
	return out
}

// AssessmentBreakdown holds raw scores, index-aligned with GradeConfig.MidtermWeights.
type AssessmentBreakdown struct {
	Midterms []float64 `json:"midterms"`
	EndSem   float64   `json:"endSem"`
}

// SubjectGrade is one subject inside a semester. TotalScore and GradePoints
// are derived and only meaningful after recomputation.
type SubjectGrade struct {
	Code        string              `json:"code"`
	Name        string              `json:"name"`
	Credits     float64             `json:"credits"`
	Assessments AssessmentBreakdown `json:"assessments"`
	TotalScore  *float64            `json:"totalScore,omitempty"`
	GradePoints *float64            `json:"gradePoints,omitempty"`
}

// SemesterGrades groups subjects of one semester.
type SemesterGrades struct {
	SemesterNumber int            `json:"semesterNumber"`
	Subjects       []SubjectGrade `json:"subjects"`
	SemesterGPA    *float64       `json:"semesterGPA,omitempty"`
}

// StudentGradesRecord is the persisted grade record of one student.
type StudentGradesRecord struct {
	UserID    string           `json:"userId"`
	Semesters []SemesterGrades `json:"semesters"`
	CGPA      *float64         `json:"cgpa,omitempty"`
}

// FindSemester returns the first semester with the given number.
func (r *StudentGradesRecord) FindSemester(number int) (*SemesterGrades, bool) {
	if r == nil {
		return nil, false
	}
	for i := range r.Semesters {
		if r.Semesters[i].SemesterNumber == number {
			return &r.Semesters[i], true
		}
	}
	return nil, false
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Value dereferences an optional derived field, treating nil as zero.
func Value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
