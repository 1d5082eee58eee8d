package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/ictcert/cert_portal/models"
)

// CertificateData is everything the rendered certificate embeds.
type CertificateData struct {
	FullName   string
	Matric     string
	Department string
	Level      string
	IssuedOn   string
}

type PDFRenderer interface {
	Render(data CertificateData) ([]byte, error)
}

type ArtifactStorage interface {
	UploadPDF(pdf []byte, publicID string) (string, error)
}

type Mailer interface {
	SendCertificate(toName, toEmail, matric, certificateURL string) error
}

// CertificateService renders and delivers certificates. Delivery is a
// best-effort side effect of a committed application: a failure here writes a
// failed receipt and surfaces an error, but never touches token or
// application state. Redeliver lets an operator re-run the pipeline without
// re-running validation.
type CertificateService struct {
	apps     ApplicationStore
	students StudentStore
	receipts ReceiptStore
	renderer PDFRenderer
	storage  ArtifactStorage
	mailer   Mailer
}

func NewCertificateService(apps ApplicationStore, students StudentStore, receipts ReceiptStore, renderer PDFRenderer, storage ArtifactStorage, mailer Mailer) *CertificateService {
	return &CertificateService{
		apps:     apps,
		students: students,
		receipts: receipts,
		renderer: renderer,
		storage:  storage,
		mailer:   mailer,
	}
}

func (s *CertificateService) Deliver(app *models.CertificateApplication, student *models.Student) (*models.DeliveryReceipt, error) {
	data := CertificateData{
		FullName:   student.FullName,
		Matric:     student.Matric,
		Department: student.Department,
		Level:      student.Level,
		IssuedOn:   app.AppliedAt.Format("January 2, 2006"),
	}

	var certificateURL string
	err := func() error {
		pdf, err := s.renderer.Render(data)
		if err != nil {
			return fmt.Errorf("render: %v", err)
		}

		certificateURL, err = s.storage.UploadPDF(pdf, fmt.Sprintf("certificates/%s", app.ID))
		if err != nil {
			return fmt.Errorf("upload: %v", err)
		}

		if err := s.mailer.SendCertificate(student.FullName, student.Email, student.Matric, certificateURL); err != nil {
			return fmt.Errorf("email: %v", err)
		}
		return nil
	}()

	receipt := &models.DeliveryReceipt{
		ApplicationID:  app.ID,
		Matric:         app.Matric,
		CertificateURL: certificateURL,
		EmailedTo:      student.Email,
		Status:         models.DeliveryStatusSent,
	}
	if err != nil {
		msg := err.Error()
		receipt.Status = models.DeliveryStatusFailed
		receipt.Error = &msg
	}

	if rerr := s.receipts.Create(receipt); rerr != nil {
		log.Printf("🔥 Failed to record delivery receipt for %s: %v", app.Matric, rerr)
	}

	if err != nil {
		log.Printf("🔥 Certificate delivery failed for %s: %v", app.Matric, err)
		return receipt, Internal("certificate delivery failed", err)
	}

	log.Printf("✅ Certificate delivered for %s to %s", app.Matric, student.Email)
	return receipt, nil
}

// Redeliver re-runs the delivery pipeline for an already-committed
// application. The token stays used and the application untouched; only a
// new receipt is produced.
func (s *CertificateService) Redeliver(matric string) (*models.DeliveryReceipt, error) {
	app, err := s.apps.FindByMatric(matric)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, NotFoundErr("application not found")
		}
		return nil, Internal("failed to look up application", err)
	}

	student, err := s.students.FindByMatric(matric)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, Validation("applicant has no profile on record; certificate cannot be rendered")
		}
		return nil, Internal("failed to look up student", err)
	}

	return s.Deliver(app, student)
}

func (s *CertificateService) Receipts(matric string) ([]models.DeliveryReceipt, error) {
	receipts, err := s.receipts.FindByMatric(matric)
	if err != nil {
		return nil, Internal("failed to list receipts", err)
	}
	return receipts, nil
}
