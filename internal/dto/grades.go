package dto

import "github.com/noah-isme/gradebook-api/internal/models"

// GradeConfigRequest is the payload for replacing the grading policy.
// Weights are stored as given.
type GradeConfigRequest struct {
	MidtermWeights []float64 `json:"midtermWeights" validate:"required"`
	EndSemWeight   *float64  `json:"endSemWeight" validate:"required"`
}

// ToModel converts the request into a GradeConfig.
func (r GradeConfigRequest) ToModel() models.GradeConfig {
	cfg := models.GradeConfig{MidtermWeights: append([]float64{}, r.MidtermWeights...)}
	if r.EndSemWeight != nil {
		cfg.EndSemWeight = *r.EndSemWeight
	}
	return cfg
}

// GradeConfigValidation is returned alongside normalised weights.
type GradeConfigValidation struct {
	Total float64 `json:"total"`
	Valid bool    `json:"valid"`
}

// AssessmentInput carries raw scores for one subject.
type AssessmentInput struct {
	Midterms []float64 `json:"midterms"`
	EndSem   float64   `json:"endSem"`
}

// SubjectInput is one subject row. Derived fields sent by clients are ignored.
type SubjectInput struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Credits     float64         `json:"credits" validate:"gte=0"`
	Assessments AssessmentInput `json:"assessments"`
}

// SemesterInput is one semester of a submitted record.
type SemesterInput struct {
	SemesterNumber int            `json:"semesterNumber" validate:"gte=1"`
	Subjects       []SubjectInput `json:"subjects" validate:"dive"`
}

// SaveGradesRequest replaces a student's grade record.
type SaveGradesRequest struct {
	Semesters []SemesterInput `json:"semesters" validate:"dive"`
}

// ToRecord converts the request into a record owned by userID.
func (r SaveGradesRequest) ToRecord(userID string) models.StudentGradesRecord {
	record := models.StudentGradesRecord{UserID: userID, Semesters: make([]models.SemesterGrades, 0, len(r.Semesters))}
	for _, sem := range r.Semesters {
		out := models.SemesterGrades{SemesterNumber: sem.SemesterNumber, Subjects: make([]models.SubjectGrade, 0, len(sem.Subjects))}
		for _, subj := range sem.Subjects {
			out.Subjects = append(out.Subjects, models.SubjectGrade{
				Code:    subj.Code,
				Name:    subj.Name,
				Credits: subj.Credits,
				Assessments: models.AssessmentBreakdown{
					Midterms: append([]float64{}, subj.Assessments.Midterms...),
					EndSem:   subj.Assessments.EndSem,
				},
			})
		}
		record.Semesters = append(record.Semesters, out)
	}
	return record
}

// ComputeGradesRequest previews derived values without saving.
type ComputeGradesRequest struct {
	UserID    string          `json:"userId"`
	Semesters []SemesterInput `json:"semesters" validate:"dive"`
}

// ToRecord converts the request into an unsaved record.
func (r ComputeGradesRequest) ToRecord() models.StudentGradesRecord {
	return SaveGradesRequest{Semesters: r.Semesters}.ToRecord(r.UserID)
}

// GradeEditOp names one editing operation.
type GradeEditOp string

const (
	EditAddSemester    GradeEditOp = "add_semester"
	EditRemoveSemester GradeEditOp = "remove_semester"
	EditAddSubject     GradeEditOp = "add_subject"
	EditRemoveSubject  GradeEditOp = "remove_subject"
	EditUpdateSubject  GradeEditOp = "update_subject"
	EditSetAssessment  GradeEditOp = "set_assessment"
)

// GradeEdit is one step applied to a stored record. Indexes are zero-based
// positions, not semester numbers.
type GradeEdit struct {
	Op            GradeEditOp `json:"op" validate:"required,oneof=add_semester remove_semester add_subject remove_subject update_subject set_assessment"`
	SemesterIndex int         `json:"semesterIndex"`
	SubjectIndex  int         `json:"subjectIndex"`
	Code          *string     `json:"code,omitempty"`
	Name          *string     `json:"name,omitempty"`
	Credits       *float64    `json:"credits,omitempty" validate:"omitempty,gte=0"`
	Kind          string      `json:"kind,omitempty" validate:"omitempty,oneof=mt1 mt2 end"`
	Value         *float64    `json:"value,omitempty"`
}

// GradeEditRequest applies edits in order and saves the result.
type GradeEditRequest struct {
	Edits []GradeEdit `json:"edits" validate:"required,min=1,dive"`
}

// ExportQuery selects the transcript format.
type ExportQuery struct {
	Format string `form:"format"`
}
