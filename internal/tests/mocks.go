package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"campease/internal/checkout"
	"campease/internal/domain"
	"campease/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateCallCount int32

	CreateError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ──────────────────────────────────────────────
// MOCK PRODUCT REPOSITORY
// ──────────────────────────────────────────────

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

// NewMockProductRepository creates a new mock product repository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]*domain.Product),
	}
}

// AddProduct adds a product to the mock repository.
func (m *MockProductRepository) AddProduct(product *domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return repository.ErrNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *product
	return &copy, nil
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		copy := *p
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK CART REPOSITORY
// ──────────────────────────────────────────────

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mu    sync.RWMutex
	items map[string][]*domain.CartItem // userID -> lines

	ClearCallCount  int32
	UpsertCallCount int32

	UpsertError error
	ClearError  error

	// ClearNoop makes Clear succeed without removing lines, to exercise
	// the post-clear consistency check.
	ClearNoop bool
}

// NewMockCartRepository creates a new mock cart repository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		items: make(map[string][]*domain.CartItem),
	}
}

// AddItem seeds a cart line.
func (m *MockCartRepository) AddItem(item *domain.CartItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.UserID] = append(m.items[item.UserID], item)
}

func (m *MockCartRepository) GetByUserID(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.copyLines(userID), nil
}

func (m *MockCartRepository) GetByUserIDForUpdate(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.copyLines(userID), nil
}

func (m *MockCartRepository) Upsert(ctx context.Context, item *domain.CartItem) error {
	atomic.AddInt32(&m.UpsertCallCount, 1)
	if m.UpsertError != nil {
		return m.UpsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items[item.UserID] {
		if existing.ProductID == item.ProductID {
			existing.Quantity += item.Quantity
			return nil
		}
	}
	m.items[item.UserID] = append(m.items[item.UserID], item)
	return nil
}

func (m *MockCartRepository) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items[userID] {
		if existing.ProductID == productID {
			existing.Quantity = quantity
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *MockCartRepository) Remove(ctx context.Context, userID, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := m.items[userID]
	for i, existing := range lines {
		if existing.ProductID == productID {
			m.items[userID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *MockCartRepository) Clear(ctx context.Context, userID string) error {
	atomic.AddInt32(&m.ClearCallCount, 1)
	if m.ClearError != nil {
		return m.ClearError
	}
	if m.ClearNoop {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[userID] = nil
	return nil
}

func (m *MockCartRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items[userID]), nil
}

func (m *MockCartRepository) copyLines(userID string) []*domain.CartItem {
	lines := m.items[userID]
	result := make([]*domain.CartItem, 0, len(lines))
	for _, line := range lines {
		copy := *line
		result = append(result, &copy)
	}
	return result
}

// ──────────────────────────────────────────────
// MOCK SETTLEMENT REPOSITORY
// ──────────────────────────────────────────────

// MockSettlementRepository is a mock implementation of SettlementRepository.
type MockSettlementRepository struct {
	mu          sync.RWMutex
	settlements map[string]*domain.Settlement

	CreateCallCount int32

	CreateError error
}

// NewMockSettlementRepository creates a new mock settlement repository.
func NewMockSettlementRepository() *MockSettlementRepository {
	return &MockSettlementRepository{
		settlements: make(map[string]*domain.Settlement),
	}
}

func (m *MockSettlementRepository) Create(ctx context.Context, settlement *domain.Settlement) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *settlement
	m.settlements[settlement.ID] = &copy
	return nil
}

func (m *MockSettlementRepository) GetByID(ctx context.Context, id string) (*domain.Settlement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	settlement, ok := m.settlements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *settlement
	return &copy, nil
}

func (m *MockSettlementRepository) UpdateStatus(ctx context.Context, id string, status domain.SettlementStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	settlement, ok := m.settlements[id]
	if !ok {
		return repository.ErrNotFound
	}
	settlement.Status = status
	return nil
}

func (m *MockSettlementRepository) Commit(ctx context.Context, id string, totalAmount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	settlement, ok := m.settlements[id]
	if !ok {
		return repository.ErrNotFound
	}
	settlement.Status = domain.SettlementStatusCommitted
	settlement.TotalAmount = totalAmount
	return nil
}

// GetSettlement returns a settlement for test assertions.
func (m *MockSettlementRepository) GetSettlement(id string) *domain.Settlement {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settlements[id]
}

// AllSettlements returns every settlement for test assertions.
func (m *MockSettlementRepository) AllSettlements() []*domain.Settlement {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Settlement, 0, len(m.settlements))
	for _, s := range m.settlements {
		result = append(result, s)
	}
	return result
}

// CountSettlements returns the number of settlements.
func (m *MockSettlementRepository) CountSettlements() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.settlements)
}

// ──────────────────────────────────────────────
// MOCK PAYMENT RECORD REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRecordRepository is a mock implementation of
// PaymentRecordRepository.
type MockPaymentRecordRepository struct {
	mu      sync.RWMutex
	records []*domain.PaymentRecord

	CreateCallCount int32

	CreateError error
}

// NewMockPaymentRecordRepository creates a new mock payment record repository.
func NewMockPaymentRecordRepository() *MockPaymentRecordRepository {
	return &MockPaymentRecordRepository{}
}

// AddRecord seeds a payment record.
func (m *MockPaymentRecordRepository) AddRecord(record *domain.PaymentRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
}

func (m *MockPaymentRecordRepository) Create(ctx context.Context, record *domain.PaymentRecord) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *record
	m.records = append(m.records, &copy)
	return nil
}

func (m *MockPaymentRecordRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.PaymentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.PaymentRecord
	for _, record := range m.records {
		if record.UserID == userID {
			copy := *record
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockPaymentRecordRepository) GetBySettlementID(ctx context.Context, settlementID string) (*domain.PaymentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, record := range m.records {
		if record.SettlementID == settlementID {
			copy := *record
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockPaymentRecordRepository) MarkRefunded(ctx context.Context, settlementID, reason string, refundDate time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, record := range m.records {
		if record.SettlementID == settlementID && !record.Refunded {
			record.Refunded = true
			record.RefundReason = reason
			date := refundDate
			record.RefundDate = &date
			return nil
		}
	}
	return repository.ErrNotFound
}

// GetBySettlement returns the payment record for a settlement, if any.
func (m *MockPaymentRecordRepository) GetBySettlement(settlementID string) *domain.PaymentRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, record := range m.records {
		if record.SettlementID == settlementID {
			return record
		}
	}
	return nil
}

// CountRecords returns the number of payment records.
func (m *MockPaymentRecordRepository) CountRecords() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// ──────────────────────────────────────────────
// MOCK TRANSACTION REPOSITORY
// ──────────────────────────────────────────────

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateCallCount int32

	CreateError error
}

// NewMockTransactionRepository creates a new mock transaction repository.
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

// AddTransaction seeds a transaction.
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[transaction.ID] = transaction
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *transaction
	m.transactions[transaction.ID] = &copy
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	transaction, ok := m.transactions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *transaction
	return &copy, nil
}

func (m *MockTransactionRepository) GetAll(ctx context.Context) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Transaction, 0, len(m.transactions))
	for _, transaction := range m.transactions {
		copy := *transaction
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockTransactionRepository) MarkRefunded(ctx context.Context, id, reason string, refundDate time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	transaction, ok := m.transactions[id]
	if !ok || transaction.Refunded {
		return repository.ErrNotFound
	}
	transaction.Refunded = true
	transaction.RefundReason = reason
	date := refundDate
	transaction.RefundDate = &date
	return nil
}

// GetTransaction returns a transaction for test assertions.
func (m *MockTransactionRepository) GetTransaction(id string) *domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.transactions[id]
}

// CountTransactions returns the number of transactions.
func (m *MockTransactionRepository) CountTransactions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transactions)
}

// ──────────────────────────────────────────────
// MOCK RENTAL REPOSITORY
// ──────────────────────────────────────────────

// MockRentalRepository is a mock implementation of RentalRepository.
type MockRentalRepository struct {
	mu      sync.RWMutex
	rentals []*domain.RentedProduct

	CreateBatchCallCount int32

	CreateBatchError error
}

// NewMockRentalRepository creates a new mock rental repository.
func NewMockRentalRepository() *MockRentalRepository {
	return &MockRentalRepository{}
}

func (m *MockRentalRepository) CreateBatch(ctx context.Context, rentals []*domain.RentedProduct) error {
	atomic.AddInt32(&m.CreateBatchCallCount, 1)
	if m.CreateBatchError != nil {
		return m.CreateBatchError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rental := range rentals {
		copy := *rental
		m.rentals = append(m.rentals, &copy)
	}
	return nil
}

func (m *MockRentalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.RentedProduct, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.RentedProduct
	for _, rental := range m.rentals {
		if rental.UserID == userID {
			copy := *rental
			result = append(result, &copy)
		}
	}
	return result, nil
}

// CountRentals returns the number of rented product entries.
func (m *MockRentalRepository) CountRentals() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rentals)
}

// ──────────────────────────────────────────────
// MOCK STORE
// ──────────────────────────────────────────────

// MockStore is a mock implementation of repository.Store. The "transaction"
// applies writes immediately against the underlying mocks; rollback is not
// emulated.
type MockStore struct {
	CartRepo        *MockCartRepository
	SettlementRepo  *MockSettlementRepository
	PaymentRepo     *MockPaymentRecordRepository
	TransactionRepo *MockTransactionRepository
	RentalRepo      *MockRentalRepository

	ExecTxCallCount int32

	ExecTxError error
}

// NewMockStore creates a mock store over the given repositories.
func NewMockStore(
	cartRepo *MockCartRepository,
	settlementRepo *MockSettlementRepository,
	paymentRepo *MockPaymentRecordRepository,
	transactionRepo *MockTransactionRepository,
	rentalRepo *MockRentalRepository,
) *MockStore {
	return &MockStore{
		CartRepo:        cartRepo,
		SettlementRepo:  settlementRepo,
		PaymentRepo:     paymentRepo,
		TransactionRepo: transactionRepo,
		RentalRepo:      rentalRepo,
	}
}

func (m *MockStore) ExecTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	atomic.AddInt32(&m.ExecTxCallCount, 1)
	if m.ExecTxError != nil {
		return m.ExecTxError
	}
	return fn(m)
}

func (m *MockStore) Carts() repository.CartRepository                   { return m.CartRepo }
func (m *MockStore) Settlements() repository.SettlementRepository       { return m.SettlementRepo }
func (m *MockStore) PaymentRecords() repository.PaymentRecordRepository { return m.PaymentRepo }
func (m *MockStore) Transactions() repository.TransactionRepository     { return m.TransactionRepo }
func (m *MockStore) Rentals() repository.RentalRepository               { return m.RentalRepo }

// ──────────────────────────────────────────────
// MOCK SETTLEMENT LOCKER
// ──────────────────────────────────────────────

// MockSettlementLocker is a mock implementation of SettlementLocker.
type MockSettlementLocker struct {
	mu   sync.Mutex
	held map[string]bool

	AcquireCallCount int32
	ReleaseCallCount int32

	AcquireError error
}

// NewMockSettlementLocker creates a new mock settlement locker.
func NewMockSettlementLocker() *MockSettlementLocker {
	return &MockSettlementLocker{
		held: make(map[string]bool),
	}
}

// HoldLock marks the lock for a user as already held.
func (m *MockSettlementLocker) HoldLock(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held[userID] = true
}

func (m *MockSettlementLocker) AcquireSettlementLock(ctx context.Context, userID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[userID] {
		return false, nil
	}
	m.held[userID] = true
	return true, nil
}

func (m *MockSettlementLocker) ReleaseSettlementLock(ctx context.Context, userID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, userID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK CHECKOUT PROVIDER
// ──────────────────────────────────────────────

// MockCheckoutProvider is a mock implementation of checkout.Provider.
type MockCheckoutProvider struct {
	mu       sync.RWMutex
	sessions map[string]*checkout.Session

	NextSessionID string

	CreateSessionError error
	GetSessionError    error

	CreateSessionCallCount int32
	GetSessionCallCount    int32

	// LastCreateParams records the parameters of the latest CreateSession
	// call for assertions.
	LastCreateParams checkout.CreateSessionParams
}

// NewMockCheckoutProvider creates a new mock checkout provider.
func NewMockCheckoutProvider() *MockCheckoutProvider {
	return &MockCheckoutProvider{
		sessions:      make(map[string]*checkout.Session),
		NextSessionID: "sess-1",
	}
}

// AddSession seeds a session.
func (m *MockCheckoutProvider) AddSession(session *checkout.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
}

func (m *MockCheckoutProvider) CreateSession(ctx context.Context, params checkout.CreateSessionParams) (string, error) {
	atomic.AddInt32(&m.CreateSessionCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastCreateParams = params
	if m.CreateSessionError != nil {
		return "", m.CreateSessionError
	}
	m.sessions[m.NextSessionID] = &checkout.Session{
		ID:         m.NextSessionID,
		Status:     checkout.SessionStatusUnpaid,
		CustomerID: params.CustomerID,
	}
	return m.NextSessionID, nil
}

func (m *MockCheckoutProvider) GetSession(ctx context.Context, sessionID string) (*checkout.Session, error) {
	atomic.AddInt32(&m.GetSessionCallCount, 1)
	if m.GetSessionError != nil {
		return nil, m.GetSessionError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, checkout.ErrProviderUnavailable
	}
	copy := *session
	return &copy, nil
}
