package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ictcert/cert_portal/models"
	"github.com/ictcert/cert_portal/payments"
)

// memStore is an in-memory TokenStore / ApplicationStore / StudentStore with
// the same transactional semantics as the GORM stores, so the race tests
// exercise the real winner-takes-all behavior.
type memStore struct {
	mu       sync.Mutex
	tokens   map[string]*models.Token // by code
	apps     map[string]*models.CertificateApplication
	students map[string]*models.Student

	failCreates int // next N token Creates return ErrDuplicateCode
}

func newMemStore() *memStore {
	return &memStore{
		tokens:   make(map[string]*models.Token),
		apps:     make(map[string]*models.CertificateApplication),
		students: make(map[string]*models.Student),
	}
}

func (m *memStore) put(t *models.Token) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	m.tokens[t.Code] = t
}

func (m *memStore) FindByCode(code string) (*models.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tokens[code]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *memStore) FindByReference(reference string) (*models.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tokens {
		if t.Reference != nil && *t.Reference == reference {
			cp := *t
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) CountManual(email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, t := range m.tokens {
		if t.OwnerEmail == email && t.Source == models.TokenSourceManual {
			count++
		}
	}
	return count, nil
}

func (m *memStore) Create(token *models.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreates > 0 {
		m.failCreates--
		return ErrDuplicateCode
	}
	if _, ok := m.tokens[token.Code]; ok {
		return ErrDuplicateCode
	}
	token.ID = uuid.New()
	token.CreatedAt = time.Now()
	cp := *token
	m.tokens[token.Code] = &cp
	return nil
}

func (m *memStore) ConsumeWithApplication(code string, app *models.CertificateApplication, student *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.apps[app.Matric]; ok {
		return ErrDuplicateMatric
	}
	token, ok := m.tokens[code]
	if !ok || token.Status != models.TokenStatusSuccess {
		return ErrTokenConsumed
	}
	if student != nil {
		for _, s := range m.students {
			if s.Email == student.Email {
				return ErrDuplicateStudent
			}
		}
	}

	app.ID = uuid.New()
	app.AppliedAt = time.Now()
	appCopy := *app
	m.apps[app.Matric] = &appCopy
	token.Status = models.TokenStatusUsed
	if student != nil {
		student.ID = uuid.New()
		studentCopy := *student
		m.students[student.Matric] = &studentCopy
	}
	return nil
}

func (m *memStore) List() ([]models.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Token, 0, len(m.tokens))
	for _, t := range m.tokens {
		out = append(out, *t)
	}
	return out, nil
}

func (m *memStore) FindByMatric(matric string) (*models.CertificateApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.apps[matric]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, ErrNotFound
}

// studentView exposes the same memStore as a StudentStore; the interfaces
// share a FindByMatric name with different return types.
type studentView struct {
	store *memStore
}

func (v studentView) FindByMatric(matric string) (*models.Student, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	if s, ok := v.store.students[matric]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (v studentView) List() ([]models.Student, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	out := make([]models.Student, 0, len(v.store.students))
	for _, s := range v.store.students {
		out = append(out, *s)
	}
	return out, nil
}

type memTransactionStore struct {
	mu    sync.Mutex
	byRef map[string]*models.Transaction
}

func newMemTransactionStore() *memTransactionStore {
	return &memTransactionStore{byRef: make(map[string]*models.Transaction)}
}

func (m *memTransactionStore) FindByReference(reference string) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.byRef[reference]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *memTransactionStore) Create(txn *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	txn.ID = uuid.New()
	txn.CreatedAt = time.Now()
	cp := *txn
	m.byRef[txn.Reference] = &cp
	return nil
}

func (m *memTransactionStore) UpdateStatus(reference, status string) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byRef[reference]
	if !ok {
		return nil, ErrNotFound
	}
	t.Status = status
	cp := *t
	return &cp, nil
}

func (m *memTransactionStore) FindStalePending(olderThan time.Time, limit int) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Transaction
	for _, t := range m.byRef {
		if t.Status == models.TxStatusPending && t.CreatedAt.Before(olderThan) {
			out = append(out, *t)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type mockGateway struct {
	result *payments.VerifyResult
	err    error
	calls  int
}

func (g *mockGateway) VerifyTransaction(reference string) (*payments.VerifyResult, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

type fakeRenderer struct {
	err error
}

func (r fakeRenderer) Render(data CertificateData) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.4 " + data.Matric), nil
}

type fakeStorage struct {
	url string
	err error
}

func (s fakeStorage) UploadPDF(pdf []byte, publicID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

type fakeMailer struct {
	err  error
	sent []string
}

func (m *fakeMailer) SendCertificate(toName, toEmail, matric, certificateURL string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, toEmail)
	return nil
}

type memReceiptStore struct {
	mu       sync.Mutex
	receipts []models.DeliveryReceipt
}

func (m *memReceiptStore) Create(receipt *models.DeliveryReceipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	receipt.ID = uuid.New()
	m.receipts = append(m.receipts, *receipt)
	return nil
}

func (m *memReceiptStore) FindByMatric(matric string) ([]models.DeliveryReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DeliveryReceipt
	for _, r := range m.receipts {
		if r.Matric == matric {
			out = append(out, r)
		}
	}
	return out, nil
}
