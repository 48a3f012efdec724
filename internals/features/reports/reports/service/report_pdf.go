package service

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"prisonsphere_backend/internals/features/reports/reports/dto"
)

const (
	pdfMargin   = 15.0
	pdfLineH    = 6.0
	pdfLabelW   = 55.0
	pdfDateFmt  = "02 Jan 2006"
	pdfStampFmt = "02 Jan 2006 15:04 MST"
)

type pdfDoc struct {
	*fpdf.Fpdf
	tr func(string) string
}

func newPDF(title string, generated time.Time) *pdfDoc {
	f := fpdf.New("P", "mm", "A4", "")
	f.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	f.SetAutoPageBreak(true, pdfMargin)
	f.SetTitle(title, true)
	f.SetAuthor("PrisonSphere", true)
	f.SetCreationDate(generated)
	f.AliasNbPages("")

	d := &pdfDoc{Fpdf: f, tr: f.UnicodeTranslatorFromDescriptor("")}
	f.SetFooterFunc(func() {
		f.SetY(-12)
		f.SetFont("Helvetica", "I", 8)
		f.SetTextColor(120, 120, 120)
		f.CellFormat(0, 5, d.tr(fmt.Sprintf("Generated %s  |  Page %d/{nb}", generated.Format(pdfStampFmt), f.PageNo())),
			"", 0, "C", false, 0, "")
	})
	f.AddPage()

	f.SetFont("Helvetica", "B", 16)
	f.SetTextColor(20, 40, 80)
	f.CellFormat(0, 10, d.tr(title), "", 1, "L", false, 0, "")
	f.SetDrawColor(20, 40, 80)
	f.Line(pdfMargin, f.GetY(), 210-pdfMargin, f.GetY())
	f.Ln(4)
	return d
}

func (d *pdfDoc) section(name string) {
	d.Ln(3)
	d.SetFont("Helvetica", "B", 12)
	d.SetFillColor(230, 235, 245)
	d.SetTextColor(20, 40, 80)
	d.CellFormat(0, 8, d.tr(name), "", 1, "L", true, 0, "")
	d.Ln(1)
}

func (d *pdfDoc) field(label, value string) {
	d.SetFont("Helvetica", "B", 10)
	d.SetTextColor(60, 60, 60)
	d.CellFormat(pdfLabelW, pdfLineH, d.tr(label), "", 0, "L", false, 0, "")
	d.SetFont("Helvetica", "", 10)
	d.SetTextColor(0, 0, 0)
	d.MultiCell(0, pdfLineH, d.tr(value), "", "L", false)
}

func (d *pdfDoc) text(s string) {
	d.SetFont("Helvetica", "", 10)
	d.SetTextColor(0, 0, 0)
	d.MultiCell(0, pdfLineH, d.tr(s), "", "L", false)
}

func (d *pdfDoc) table(headers []string, widths []float64, rows [][]string) {
	if len(rows) == 0 {
		d.SetFont("Helvetica", "I", 10)
		d.SetTextColor(120, 120, 120)
		d.CellFormat(0, pdfLineH, "No records.", "", 1, "L", false, 0, "")
		return
	}
	d.SetFont("Helvetica", "B", 9)
	d.SetFillColor(245, 245, 245)
	d.SetTextColor(0, 0, 0)
	for i, h := range headers {
		d.CellFormat(widths[i], 7, d.tr(h), "1", 0, "L", true, 0, "")
	}
	d.Ln(-1)
	d.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i, cell := range row {
			d.CellFormat(widths[i], 6, d.tr(truncate(cell, widths[i])), "1", 0, "L", false, 0, "")
		}
		d.Ln(-1)
	}
}

// truncate keeps a cell on one line; roughly two characters fit per mm at 9pt.
func truncate(s string, width float64) string {
	limit := int(width * 0.55)
	r := []rune(s)
	if limit < 4 || len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

func dateOrDash(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format(pdfDateFmt)
}

func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// RenderPDF writes the report of the given kind as a PDF document.
func RenderPDF(w io.Writer, r *dto.InmateReport, kind string) error {
	var d *pdfDoc
	switch kind {
	case KindInmateInfo:
		d = newPDF("Inmate Information Report", r.GeneratedAt)
		renderProfile(d, r)
		renderVisitsAndParoles(d, r)
	case KindRehabStatus:
		d = newPDF("Rehabilitation Status Report", r.GeneratedAt)
		renderProfile(d, r)
		renderRehabilitation(d, r)
	default:
		return ErrUnknownReportType
	}
	if err := d.Error(); err != nil {
		return err
	}
	return d.Output(w)
}

func renderProfile(d *pdfDoc, r *dto.InmateReport) {
	in := r.Inmate
	d.section("Inmate Profile")
	d.field("Inmate ID", in.InmateID)
	d.field("Name", in.FullName)
	d.field("Date of Birth", in.DateOfBirth.Format(pdfDateFmt))
	d.field("Gender", in.Gender)
	d.field("Admission Date", in.AdmissionDate.Format(pdfDateFmt))
	d.field("Sentence", strconv.Itoa(in.SentenceDuration)+" months")
	d.field("Assigned Cell", in.AssignedCell)
	d.field("Status", in.Status)
	d.field("Crime Details", in.CrimeDetails)
}

func renderVisitsAndParoles(d *pdfDoc, r *dto.InmateReport) {
	d.section(fmt.Sprintf("Visitor Log (%d)", len(r.Visitors)))
	rows := make([][]string, 0, len(r.Visitors))
	for _, v := range r.Visitors {
		rows = append(rows, []string{
			v.VisitDate.Format(pdfDateFmt), v.VisitorName, v.Relationship,
			strconv.Itoa(v.Duration) + " min", v.Purpose,
		})
	}
	d.table([]string{"Date", "Visitor", "Relationship", "Duration", "Purpose"},
		[]float64{28, 42, 30, 22, 58}, rows)

	d.section(fmt.Sprintf("Parole History (%d)", len(r.Paroles)))
	rows = rows[:0]
	for _, p := range r.Paroles {
		rows = append(rows, []string{
			p.ApplicationDate.Format(pdfDateFmt), p.HearingDate.Format(pdfDateFmt),
			p.Status, dateOrDash(p.DecidedAt), strOrDash(p.DecisionNotes),
		})
	}
	d.table([]string{"Applied", "Hearing", "Status", "Decided", "Notes"},
		[]float64{28, 28, 24, 28, 72}, rows)
}

func renderRehabilitation(d *pdfDoc, r *dto.InmateReport) {
	rh := r.Rehabilitation
	d.section("Rehabilitation Summary")
	d.field("Rehabilitation Score", fmt.Sprintf("%.2f%%", rh.Score))
	d.field("Assessment", rh.Label)
	d.field("Avg. Work Ethic", fmt.Sprintf("%.2f / 5", rh.AvgWorkEthic))
	d.field("Avg. Cooperation", fmt.Sprintf("%.2f / 5", rh.AvgCooperation))
	d.field("Total Incidents", strconv.Itoa(rh.TotalIncidents))
	d.field("Behavior Logs", strconv.Itoa(rh.LogCount))

	d.section(fmt.Sprintf("Work Programs (%d)", len(r.Enrollments)))
	rows := make([][]string, 0, len(r.Enrollments))
	for _, e := range r.Enrollments {
		name := "-"
		if e.WorkProgram != nil {
			name = e.WorkProgram.Name
		}
		rating := "-"
		if e.PerformanceRating != nil {
			rating = fmt.Sprintf("%d (%s)", *e.PerformanceRating, e.PerformanceLabel)
		}
		rows = append(rows, []string{
			name, e.StartDate.Format(pdfDateFmt), e.EndDate.Format(pdfDateFmt), e.Status, rating,
		})
	}
	d.table([]string{"Program", "Start", "End", "Status", "Rating"},
		[]float64{50, 28, 28, 26, 48}, rows)

	d.section(fmt.Sprintf("Behavior Logs (%d)", len(r.BehaviorLogs)))
	rows = rows[:0]
	for _, b := range r.BehaviorLogs {
		rows = append(rows, []string{
			b.LogDate.Format(pdfDateFmt), strconv.Itoa(b.WorkEthic), strconv.Itoa(b.Cooperation),
			strconv.Itoa(b.SocialSkills), strconv.Itoa(b.IncidentReports), strOrDash(b.Notes),
		})
	}
	d.table([]string{"Date", "Work", "Coop.", "Social", "Incid.", "Notes"},
		[]float64{28, 18, 18, 18, 18, 80}, rows)

	d.section(fmt.Sprintf("Activities (%d)", len(r.ActivityLogs)))
	if len(r.ActivityLogs) == 0 {
		d.text("No activities recorded.")
		return
	}
	rows = rows[:0]
	for _, a := range r.ActivityLogs {
		rows = append(rows, []string{a.LogDate.Format(pdfDateFmt), a.ActivityType, a.Description})
	}
	d.table([]string{"Date", "Type", "Description"}, []float64{28, 35, 117}, rows)
}
