package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/gradebook-api/internal/models"
	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
	"github.com/noah-isme/gradebook-api/pkg/export"
)

type transcriptSource interface {
	FetchGrades(ctx context.Context, userID string) (*models.StudentGradesRecord, error)
}

type studentLookup interface {
	Get(ctx context.Context, id string) (*models.User, error)
}

// ExportResult is a rendered transcript.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

var transcriptHeaders = []string{"Semester", "Code", "Name", "Credits", "Midterms", "End Sem", "Total", "Grade Points"}

// ExportService renders grade transcripts.
type ExportService struct {
	grades    transcriptSource
	students  studentLookup
	renderers map[string]export.Renderer
	logger    *zap.Logger
}

// NewExportService wires the CSV, PDF and XLSX renderers.
func NewExportService(grades transcriptSource, students studentLookup, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		grades:   grades,
		students: students,
		renderers: map[string]export.Renderer{
			"csv":  export.NewCSVExporter(),
			"pdf":  export.NewPDFExporter(),
			"xlsx": export.NewXLSXExporter("Transcript"),
		},
		logger: logger,
	}
}

// Export renders the transcript of userID in format. An empty format means csv.
func (s *ExportService) Export(ctx context.Context, userID, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnsupported, fmt.Sprintf("unsupported export format %q", format))
	}

	record, err := s.grades.FetchGrades(ctx, userID)
	if err != nil {
		return nil, err
	}

	data, err := renderer.Render(s.transcript(ctx, record))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render transcript")
	}
	s.logger.Info("transcript exported", zap.String("user_id", userID), zap.String("format", format), zap.Int("bytes", len(data)))
	return &ExportResult{
		Filename:    fmt.Sprintf("transcript-%s.%s", userID, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

func (s *ExportService) transcript(ctx context.Context, record *models.StudentGradesRecord) export.Dataset {
	title := "Transcript " + record.UserID
	if s.students != nil {
		if student, err := s.students.Get(ctx, record.UserID); err == nil {
			title = fmt.Sprintf("Transcript %s %s (%s)", student.FirstName, student.LastName, student.ID)
		}
	}

	data := export.Dataset{Title: title, Headers: transcriptHeaders}
	for _, sem := range record.Semesters {
		semester := strconv.Itoa(sem.SemesterNumber)
		for _, subj := range sem.Subjects {
			data.Rows = append(data.Rows, map[string]string{
				"Semester":     semester,
				"Code":         subj.Code,
				"Name":         subj.Name,
				"Credits":      formatNumber(subj.Credits),
				"Midterms":     joinScores(subj.Assessments.Midterms),
				"End Sem":      formatNumber(subj.Assessments.EndSem),
				"Total":        formatDerived(subj.TotalScore),
				"Grade Points": formatDerived(subj.GradePoints),
			})
		}
		data.Footer = append(data.Footer, fmt.Sprintf("Semester %d GPA: %s", sem.SemesterNumber, formatDerived(sem.SemesterGPA)))
	}
	data.Footer = append(data.Footer, "CGPA: "+formatDerived(record.CGPA))
	return data
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDerived(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func joinScores(scores []float64) string {
	parts := make([]string, len(scores))
	for i, score := range scores {
		parts[i] = formatNumber(score)
	}
	return strings.Join(parts, " / ")
}
