package grading

import "github.com/noah-isme/gradebook-api/internal/models"

// AssessmentKind names an editable assessment slot.
type AssessmentKind string

const (
	AssessmentMidterm1 AssessmentKind = "mt1"
	AssessmentMidterm2 AssessmentKind = "mt2"
	AssessmentEndSem   AssessmentKind = "end"
)

// SubjectPatch carries the identity fields an editor may change. Nil fields
// are left untouched.
type SubjectPatch struct {
	Code    *string
	Name    *string
	Credits *float64
}

// The draft helpers below never mutate their input: each returns a detached
// copy and reports false, leaving the copy unchanged, when an index is out of
// range. Derived fields go stale until the record is recomputed.

// CloneRecord returns a deep copy of record.
func CloneRecord(record models.StudentGradesRecord) models.StudentGradesRecord {
	out := record
	out.CGPA = cloneFloat(record.CGPA)
	if record.Semesters != nil {
		out.Semesters = make([]models.SemesterGrades, len(record.Semesters))
		for i, sem := range record.Semesters {
			out.Semesters[i] = cloneSemester(sem)
		}
	}
	return out
}

func cloneSemester(sem models.SemesterGrades) models.SemesterGrades {
	out := sem
	out.SemesterGPA = cloneFloat(sem.SemesterGPA)
	if sem.Subjects != nil {
		out.Subjects = make([]models.SubjectGrade, len(sem.Subjects))
		for i, subj := range sem.Subjects {
			out.Subjects[i] = cloneSubject(subj)
		}
	}
	return out
}

func cloneSubject(subj models.SubjectGrade) models.SubjectGrade {
	out := subj
	out.Assessments.Midterms = append([]float64(nil), subj.Assessments.Midterms...)
	out.TotalScore = cloneFloat(subj.TotalScore)
	out.GradePoints = cloneFloat(subj.GradePoints)
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return models.Float(*v)
}

// EmptySubject is the blank row added by the editor.
func EmptySubject() models.SubjectGrade {
	return models.SubjectGrade{
		Credits:     1,
		Assessments: models.AssessmentBreakdown{Midterms: []float64{0, 0}},
	}
}

// NextSemesterNumber is one past the last semester's number, or 1.
func NextSemesterNumber(record models.StudentGradesRecord) int {
	if n := len(record.Semesters); n > 0 {
		return record.Semesters[n-1].SemesterNumber + 1
	}
	return 1
}

// AddSemester appends an empty semester numbered after the last one.
func AddSemester(record models.StudentGradesRecord) models.StudentGradesRecord {
	out := CloneRecord(record)
	out.Semesters = append(out.Semesters, models.SemesterGrades{
		SemesterNumber: NextSemesterNumber(record),
		Subjects:       []models.SubjectGrade{},
	})
	return out
}

// RemoveSemester drops the semester at index.
func RemoveSemester(record models.StudentGradesRecord, index int) (models.StudentGradesRecord, bool) {
	out := CloneRecord(record)
	if index < 0 || index >= len(out.Semesters) {
		return out, false
	}
	out.Semesters = append(out.Semesters[:index], out.Semesters[index+1:]...)
	return out, true
}

// AddSubject appends EmptySubject to the semester at semesterIndex.
func AddSubject(record models.StudentGradesRecord, semesterIndex int) (models.StudentGradesRecord, bool) {
	out := CloneRecord(record)
	if semesterIndex < 0 || semesterIndex >= len(out.Semesters) {
		return out, false
	}
	sem := &out.Semesters[semesterIndex]
	sem.Subjects = append(sem.Subjects, EmptySubject())
	return out, true
}

// RemoveSubject drops one subject from a semester.
func RemoveSubject(record models.StudentGradesRecord, semesterIndex, subjectIndex int) (models.StudentGradesRecord, bool) {
	out := CloneRecord(record)
	sem, ok := semesterAt(&out, semesterIndex)
	if !ok || subjectIndex < 0 || subjectIndex >= len(sem.Subjects) {
		return out, false
	}
	sem.Subjects = append(sem.Subjects[:subjectIndex], sem.Subjects[subjectIndex+1:]...)
	return out, true
}

// UpdateSubject applies patch to one subject.
func UpdateSubject(record models.StudentGradesRecord, semesterIndex, subjectIndex int, patch SubjectPatch) (models.StudentGradesRecord, bool) {
	out := CloneRecord(record)
	subj, ok := subjectAt(&out, semesterIndex, subjectIndex)
	if !ok {
		return out, false
	}
	if patch.Code != nil {
		subj.Code = *patch.Code
	}
	if patch.Name != nil {
		subj.Name = *patch.Name
	}
	if patch.Credits != nil {
		subj.Credits = *patch.Credits
	}
	return out, true
}

// SetAssessment writes one raw score. Midterm slots missing from the subject
// are created as zeros first.
func SetAssessment(record models.StudentGradesRecord, semesterIndex, subjectIndex int, kind AssessmentKind, value float64) (models.StudentGradesRecord, bool) {
	out := CloneRecord(record)
	subj, ok := subjectAt(&out, semesterIndex, subjectIndex)
	if !ok {
		return out, false
	}
	switch kind {
	case AssessmentMidterm1:
		setMidterm(&subj.Assessments, 0, value)
	case AssessmentMidterm2:
		setMidterm(&subj.Assessments, 1, value)
	case AssessmentEndSem:
		subj.Assessments.EndSem = value
	default:
		return out, false
	}
	return out, true
}

func setMidterm(a *models.AssessmentBreakdown, index int, value float64) {
	for len(a.Midterms) <= index {
		a.Midterms = append(a.Midterms, 0)
	}
	a.Midterms[index] = value
}

func semesterAt(record *models.StudentGradesRecord, index int) (*models.SemesterGrades, bool) {
	if index < 0 || index >= len(record.Semesters) {
		return nil, false
	}
	return &record.Semesters[index], true
}

func subjectAt(record *models.StudentGradesRecord, semesterIndex, subjectIndex int) (*models.SubjectGrade, bool) {
	sem, ok := semesterAt(record, semesterIndex)
	if !ok || subjectIndex < 0 || subjectIndex >= len(sem.Subjects) {
		return nil, false
	}
	return &sem.Subjects[subjectIndex], true
}
