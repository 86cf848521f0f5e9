package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/signintech/gopdf"
	"go.uber.org/zap"

	"oncolife-triage/internal/triage"
)

// TelegramClient defines the delivery channel for care-team notifications.
type TelegramClient interface {
	SendMessage(chatID int64, text string) error
	SendDocument(chatID int64, fileData []byte, fileName string) error
}

type Service struct {
	tgClient       TelegramClient
	careTeamChatID int64
	log            *zap.SugaredLogger
}

func NewService(tg TelegramClient, careTeamChatID int64, log *zap.SugaredLogger) *Service {
	return &Service{
		tgClient:       tg,
		careTeamChatID: careTeamChatID,
		log:            log,
	}
}

// SendAssessmentReport notifies the care team about a concluded assessment:
// a short alert message followed by a PDF with the full question/answer
// transcript and the outcome card.
func (s *Service) SendAssessmentReport(ctx context.Context, sess triage.Session) error {
	if sess.Outcome == nil {
		return fmt.Errorf("session %s has no outcome", sess.ID)
	}

	if err := s.tgClient.SendMessage(s.careTeamChatID, summaryText(sess)); err != nil {
		return fmt.Errorf("send alert message: %w", err)
	}

	pdfBytes, err := buildPDF(sess)
	if err != nil {
		return fmt.Errorf("build report PDF: %w", err)
	}

	fileName := fmt.Sprintf("triage_%s.pdf", sess.ID)
	if err := s.tgClient.SendDocument(s.careTeamChatID, pdfBytes, fileName); err != nil {
		return fmt.Errorf("send report document: %w", err)
	}
	s.log.Infow("assessment report sent", "session_id", sess.ID, "level", sess.Outcome.Level)
	return nil
}

func summaryText(sess triage.Session) string {
	o := sess.Outcome
	return fmt.Sprintf("[%s] Triage alert for patient %s\n%s\nTiming: %s\nAnswered %d questions, last module %s.",
		o.Level, sess.PatientID, o.Action, o.Timing, len(sess.Transcript), sess.ModuleID)
}

func buildPDF(sess triage.Session) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	// Try common DejaVu locations so the container image does not need a
	// bundled font.
	fontPaths := []string{
		"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	}
	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF, ensure ttf-dejavu is installed: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Symptom Triage Report")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Date: %s", time.Now().Format("02 Jan 2006 15:04")))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Patient ID: %s", sess.PatientID))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Session ID: %s", sess.ID))
	pdf.Br(25)

	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Outcome: [%s] %s", sess.Outcome.Level, sess.Outcome.Title))
	pdf.Br(15)
	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	writeWrapped(&pdf, fmt.Sprintf("Action: %s (%s)", sess.Outcome.Action, sess.Outcome.Timing))
	writeWrapped(&pdf, fmt.Sprintf("Guidance: %s", sess.Outcome.Script))
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Questions and answers:")
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	if len(sess.Transcript) == 0 {
		pdf.Cell(nil, "- No questions were answered.")
		pdf.Br(12)
	}
	for _, qa := range sess.Transcript {
		writeWrapped(&pdf, fmt.Sprintf("- [%s] %s", qa.ModuleID, qa.Question))
		writeWrapped(&pdf, fmt.Sprintf("  Answer: %s", qa.Answer))
		pdf.Br(5)
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeWrapped(pdf *gopdf.GoPdf, text string) {
	lines, _ := pdf.SplitText(text, 500)
	for _, l := range lines {
		pdf.Cell(nil, l)
		pdf.Br(12)
	}
}
