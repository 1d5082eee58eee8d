package services

import (
	"errors"
	"log"

	"github.com/ictcert/cert_portal/models"
)

// ApplicationService is the submission state machine. It is the only place a
// token moves success -> used, and the only place applications are created;
// both happen inside one store transaction so neither can exist without the
// other.
type ApplicationService struct {
	tokens   TokenStore
	apps     ApplicationStore
	students StudentStore
}

func NewApplicationService(tokens TokenStore, apps ApplicationStore, students StudentStore) *ApplicationService {
	return &ApplicationService{tokens: tokens, apps: apps, students: students}
}

// Profile is the optional extended-applicant data carried by the multipart
// submission shape. When present, the applicant is promoted to a Student
// record in the same transaction that consumes the token.
type Profile struct {
	FullName    string
	Phone       string
	PassportURL string
}

type SubmitRequest struct {
	Email     string
	Matric    string
	TokenCode string
	Profile   *Profile
}

type SubmitResult struct {
	Application *models.CertificateApplication
	Student     *models.Student
}

// Submit runs the full redemption sequence:
//  1. token must exist, belong to the email, and still be success
//  2. the matric must be unused; a duplicate is rejected before the token is
//     touched so a duplicate attempt never burns a valid token
//  3. application (and student, when profiled) created and token flipped to
//     used, atomically
//
// Under concurrency the store's compare-and-swap decides the winner: the
// losers of a same-code race see the token already consumed and get the
// invalid-token rejection, not the duplicate-matric one.
func (s *ApplicationService) Submit(req SubmitRequest) (*SubmitResult, error) {
	token, err := s.tokens.FindByCode(req.TokenCode)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, Validation("invalid or unauthorized token")
		}
		return nil, Internal("failed to look up token", err)
	}
	if token.OwnerEmail != req.Email || token.Status != models.TokenStatusSuccess {
		return nil, Validation("invalid or unauthorized token")
	}

	if _, err := s.apps.FindByMatric(req.Matric); err == nil {
		return nil, Conflict("application with this matric number already exists")
	} else if !errors.Is(err, ErrNotFound) {
		return nil, Internal("failed to look up application", err)
	}

	app := &models.CertificateApplication{
		Email:     req.Email,
		Matric:    req.Matric,
		TokenCode: req.TokenCode,
		Status:    models.ApplicationStatusPending,
	}

	var student *models.Student
	if req.Profile != nil {
		department, level := DepartmentAndLevel(req.Matric)
		student = &models.Student{
			FullName:    req.Profile.FullName,
			Matric:      req.Matric,
			Department:  department,
			Level:       level,
			Phone:       req.Profile.Phone,
			Email:       req.Email,
			PassportURL: req.Profile.PassportURL,
		}
	}

	if err := s.tokens.ConsumeWithApplication(req.TokenCode, app, student); err != nil {
		switch {
		case errors.Is(err, ErrTokenConsumed):
			// Lost the race for this code: some other submission spent it
			// between our read and the swap.
			return nil, Validation("invalid or unauthorized token")
		case errors.Is(err, ErrDuplicateMatric):
			return nil, Conflict("application with this matric number already exists")
		case errors.Is(err, ErrDuplicateStudent):
			return nil, Conflict("a student profile already exists for this email")
		default:
			return nil, Internal("failed to submit application", err)
		}
	}

	log.Printf("✅ Application recorded for matric %s, token %s consumed", req.Matric, req.TokenCode)
	return &SubmitResult{Application: app, Student: student}, nil
}

func (s *ApplicationService) AppliedStudents() ([]models.Student, error) {
	students, err := s.students.List()
	if err != nil {
		return nil, Internal("failed to list students", err)
	}
	return students, nil
}
