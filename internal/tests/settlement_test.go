package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"campease/internal/checkout"
	"campease/internal/domain"
	"campease/internal/repository"
	"campease/internal/service"
)

// ──────────────────────────────────────────────
// 1. PAYMENT CONFIRMATION AND SETTLEMENT
// ──────────────────────────────────────────────

type settlementFixture struct {
	cartRepo        *MockCartRepository
	settlementRepo  *MockSettlementRepository
	paymentRepo     *MockPaymentRecordRepository
	transactionRepo *MockTransactionRepository
	rentalRepo      *MockRentalRepository
	userRepo        *MockUserRepository
	productRepo     *MockProductRepository
	provider        *MockCheckoutProvider
	locker          *MockSettlementLocker
	svc             *service.SettlementService
}

func newSettlementFixture(lockPriceAtAddToCart bool) *settlementFixture {
	f := &settlementFixture{
		cartRepo:        NewMockCartRepository(),
		settlementRepo:  NewMockSettlementRepository(),
		paymentRepo:     NewMockPaymentRecordRepository(),
		transactionRepo: NewMockTransactionRepository(),
		rentalRepo:      NewMockRentalRepository(),
		userRepo:        NewMockUserRepository(),
		productRepo:     NewMockProductRepository(),
		provider:        NewMockCheckoutProvider(),
		locker:          NewMockSettlementLocker(),
	}

	f.userRepo.AddUser(&domain.User{
		ID:    "user-1",
		Name:  "Alice Trekker",
		Email: "alice@example.com",
		Role:  domain.RoleCustomer,
	})

	store := NewMockStore(f.cartRepo, f.settlementRepo, f.paymentRepo, f.transactionRepo, f.rentalRepo)

	f.svc = service.NewSettlementService(
		store,
		f.settlementRepo,
		f.userRepo,
		f.productRepo,
		f.provider,
		f.locker,
		nil,
		nil,
		service.SettlementConfig{
			LockTTL:              30 * time.Second,
			ProviderTimeout:      5 * time.Second,
			LockPriceAtAddToCart: lockPriceAtAddToCart,
		},
	)

	return f
}

// seedCart loads a two-line cart: a tent at 1000.00 x2 and a sleeping bag
// at 500.00 x1, for a 2500.00 total.
func (f *settlementFixture) seedCart() {
	f.cartRepo.AddItem(&domain.CartItem{
		ID:        "line-1",
		UserID:    "user-1",
		ProductID: "prod-tent",
		Name:      "4-Person Tent",
		UnitPrice: 1000.00,
		Quantity:  2,
	})
	f.cartRepo.AddItem(&domain.CartItem{
		ID:        "line-2",
		UserID:    "user-1",
		ProductID: "prod-bag",
		Name:      "Sleeping Bag",
		UnitPrice: 500.00,
		Quantity:  1,
	})
}

func (f *settlementFixture) seedPaidSession(id string) {
	f.provider.AddSession(&checkout.Session{
		ID:         id,
		Status:     checkout.SessionStatusPaid,
		CustomerID: "user-1",
	})
}

func TestConfirmPayment_SettlesPaidCart(t *testing.T) {
	t.Parallel()

	f := newSettlementFixture(true)
	f.seedCart()
	f.seedPaidSession("sess-paid")

	ctx := context.Background()
	result, err := f.svc.ConfirmPayment(ctx, service.ConfirmPaymentRequest{
		UserID:    "user-1",
		SessionID: "sess-paid",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1000*2 + 500*1
	if result.Transaction.TotalAmount != 2500.00 {
		t.Errorf("expected total 2500.00, got %.2f", result.Transaction.TotalAmount)
	}

	// Payment record mirrors the transaction via the settlement id.
	record := f.paymentRepo.GetBySettlement(result.Settlement.ID)
	if record == nil {
		t.Fatal("payment record not found for settlement")
	}
	if record.TotalAmount != result.Transaction.TotalAmount {
		t.Errorf("payment record total %.2f does not match transaction total %.2f",
			record.TotalAmount, result.Transaction.TotalAmount)
	}
	if record.UserID != "user-1" {
		t.Errorf("expected payment record for user-1, got %s", record.UserID)
	}

	// One rented product entry per cart line.
	if f.rentalRepo.CountRentals() != 2 {
		t.Errorf("expected 2 rented product entries, got %d", f.rentalRepo.CountRentals())
	}

	// Cart is empty afterwards.
	items, err := f.cartRepo.GetByUserID(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty cart after settlement, got %d lines", len(items))
	}

	// Settlement record landed in COMMITTED with the settled total.
	stored := f.settlementRepo.GetSettlement(result.Settlement.ID)
	if stored == nil {
		t.Fatal("settlement not found")
	}
	if stored.Status != domain.SettlementStatusCommitted {
		t.Errorf("expected settlement status %s, got %s", domain.SettlementStatusCommitted, stored.Status)
	}
	if stored.TotalAmount != result.Transaction.TotalAmount {
		t.Errorf("stored settlement total %.2f does not match transaction total %.2f",
			stored.TotalAmount, result.Transaction.TotalAmount)
	}

	// Lock was taken and released.
	if f.locker.AcquireCallCount != 1 {
		t.Errorf("expected 1 lock acquisition, got %d", f.locker.AcquireCallCount)
	}
	if f.locker.ReleaseCallCount != 1 {
		t.Errorf("expected 1 lock release, got %d", f.locker.ReleaseCallCount)
	}

	if result.Transaction.Items[0].ProductID == "" {
		t.Error("transaction items should carry the settled product ids")
	}
}

func TestConfirmPayment_RejectsUnpaidSession(t *testing.T) {
	t.Parallel()

	f := newSettlementFixture(true)
	f.seedCart()
	f.provider.AddSession(&checkout.Session{
		ID:         "sess-unpaid",
		Status:     checkout.SessionStatusUnpaid,
		CustomerID: "user-1",
	})

	ctx := context.Background()
	_, err := f.svc.ConfirmPayment(ctx, service.ConfirmPaymentRequest{
		UserID:    "user-1",
		SessionID: "sess-unpaid",
	})
	if !errors.Is(err, service.ErrPaymentNotCompleted) {
		t.Fatalf("expected ErrPaymentNotCompleted, got %v", err)
	}

	// No writes of any kind happened.
	if f.settlementRepo.CountSettlements() != 0 {
		t.Errorf("expected no settlements, got %d", f.settlementRepo.CountSettlements())
	}
	if f.paymentRepo.CountRecords() != 0 {
		t.Errorf("expected no payment records, got %d", f.paymentRepo.CountRecords())
	}
	if f.transactionRepo.CountTransactions() != 0 {
		t.Errorf("expected no transactions, got %d", f.transactionRepo.CountTransactions())
	}

	// Cart is untouched.
	items, _ := f.cartRepo.GetByUserID(ctx, "user-1")
	if len(items) != 2 {
		t.Errorf("expected cart to keep its 2 lines, got %d", len(items))
	}
}

func TestConfirmPayment_RejectsEmptyCart(t *testing.T) {
	t.Parallel()

	f := newSettlementFixture(true)
	f.seedPaidSession("sess-paid")

	ctx := context.Background()
	_, err := f.svc.ConfirmPayment(ctx, service.ConfirmPaymentRequest{
		UserID:    "user-1",
		SessionID: "sess-paid",
	})
	if !errors.Is(err, service.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	if f.paymentRepo.CountRecords() != 0 {
		t.Errorf("expected no payment records, got %d", f.paymentRepo.CountRecords())
	}
	if f.transactionRepo.CountTransactions() != 0 {
		t.Errorf("expected no transactions, got %d", f.transactionRepo.CountTransactions())
	}
}

func TestConfirmPayment_SecondConfirmationFindsEmptyCart(t *testing.T) {
	t.Parallel()

	f := newSettlementFixture(true)
	f.seedCart()
	f.seedPaidSession("sess-paid")

	ctx := context.Background()
	if _, err := f.svc.ConfirmPayment(ctx, service.ConfirmPaymentRequest{
		UserID:    "user-1",
		SessionID: "sess-paid",
	}); err != nil {
		t.Fatalf("unexpected error on first confirmation: %v", err)
	}

	// A duplicate confirmation for the same session runs after the cart
	// was cleared, so it must not settle a second time.
	_, err := f.svc.ConfirmPayment(ctx, service.ConfirmPaymentRequest{
		UserID:    "user-1",
		SessionID: "sess-paid",
	})
	if !errors.Is(err, service.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart on duplicate confirmation, got %v", err)
	}

	if f.transactionRepo.CountTransactions() != 1 {
		t.Errorf("expected exactly 1 transaction after duplicate confirmation, got %d",
			f.transactionRepo.CountTransactions())
	}
	if f.paymentRepo.CountRecords() != 1 {
		t.Errorf("expected exactly 1 payment record after duplicate confirmation, got %d",
			f.paymentRepo.CountRecords())
	}
}

func TestConfirmPayment_ConcurrentSettlementBlocked(t *testing.T) {
	t.Parallel()

	f := newSettlementFixture(true)
	f.seedCart()
	f.seedPaidSession("sess-paid")
	f.locker.HoldLock("user-1")

	ctx := context.Background()
	_, err := f.svc.ConfirmPayment(ctx, service.ConfirmPaymentRequest{
		UserID:    "user-1",
		SessionID: "sess-paid",
	})
	if !errors.Is(err, service.ErrSettlementInProgress) {
		t.Fatalf("expected ErrSettlementInProgress, got %v", err)
	}

	if f.settlementRepo.CountSettlements() != 0 {
		t.Errorf("expected no settlements while lock is held, got %d", f.settlementRepo.CountSettlements())
	}
	// The held lock belongs to the other request; it must not be released.
	if f.locker.ReleaseCallCount != 0 {
		t.Errorf("expected no lock release, got %d", f.locker.ReleaseCallCount)
	}
}

func TestConfirmPayment_ProviderTimeoutIsNotADecline(t *testing.T) {
	t.Parallel()

	f := newSettlementFixture(true)
	f.seedCart()
	f.provider.GetSessionError = checkout.ErrProviderTimeout

	ctx := context.Background()
	_, err := f.svc.ConfirmPayment(ctx, service.ConfirmPaymentRequest{
		UserID:    "user-1",
		SessionID: "sess-paid",
	})
	if !errors.Is(err, checkout.ErrProviderTimeout) {
		t.Fatalf("expected ErrProviderTimeout, got %v", err)
	}
	if errors.Is(err, service.ErrPaymentNotCompleted) {
		t.Error("a provider timeout must not be reported as a declined payment")
	}

	if f.settlementRepo.CountSettlements() != 0 {
		t.Errorf("expected no settlements after timeout, got %d", f.settlementRepo.CountSettlements())
	}
}

func TestConfirmPayment_SessionCustomerMismatch(t *testing.T) {
	t.Parallel()

	f := newSettlementFixture(true)
	f.seedCart()
	f.provider.AddSession(&checkout.Session{
		ID:         "sess-other",
		Status:     checkout.SessionStatusPaid,
		CustomerID: "user-2",
	})

	ctx := context.Background()
	_, err := f.svc.ConfirmPayment(ctx, service.ConfirmPaymentRequest{
		UserID:    "user-1",
		SessionID: "sess-other",
	})
	if !errors.Is(err, service.ErrSessionCustomerMismatch) {
		t.Fatalf("expected ErrSessionCustomerMismatch, got %v", err)
	}
}

func TestConfirmPayment_RevalidatesPricesWhenUnlocked(t *testing.T) {
	t.Parallel()

	f := newSettlementFixture(false)
	f.seedCart()
	f.seedPaidSession("sess-paid")

	// Catalog price moved since the tent was added to the cart.
	f.productRepo.AddProduct(&domain.Product{ID: "prod-tent", Name: "4-Person Tent", Price: 1100.00})
	f.productRepo.AddProduct(&domain.Product{ID: "prod-bag", Name: "Sleeping Bag", Price: 500.00})

	ctx := context.Background()
	_, err := f.svc.ConfirmPayment(ctx, service.ConfirmPaymentRequest{
		UserID:    "user-1",
		SessionID: "sess-paid",
	})
	if !errors.Is(err, service.ErrPriceChanged) {
		t.Fatalf("expected ErrPriceChanged, got %v", err)
	}

	// Nothing was settled and the cart is intact.
	if f.transactionRepo.CountTransactions() != 0 {
		t.Errorf("expected no transactions, got %d", f.transactionRepo.CountTransactions())
	}
	items, _ := f.cartRepo.GetByUserID(ctx, "user-1")
	if len(items) != 2 {
		t.Errorf("expected cart to keep its 2 lines, got %d", len(items))
	}
}

func TestConfirmPayment_LockedPriceIgnoresCatalogChange(t *testing.T) {
	t.Parallel()

	f := newSettlementFixture(true)
	f.seedCart()
	f.seedPaidSession("sess-paid")

	// Same catalog drift as above, but the captured price wins.
	f.productRepo.AddProduct(&domain.Product{ID: "prod-tent", Name: "4-Person Tent", Price: 1100.00})
	f.productRepo.AddProduct(&domain.Product{ID: "prod-bag", Name: "Sleeping Bag", Price: 500.00})

	ctx := context.Background()
	result, err := f.svc.ConfirmPayment(ctx, service.ConfirmPaymentRequest{
		UserID:    "user-1",
		SessionID: "sess-paid",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Transaction.TotalAmount != 2500.00 {
		t.Errorf("expected total at captured prices 2500.00, got %.2f", result.Transaction.TotalAmount)
	}
}

func TestConfirmPayment_CartNotClearedFailsSettlement(t *testing.T) {
	t.Parallel()

	f := newSettlementFixture(true)
	f.seedCart()
	f.seedPaidSession("sess-paid")
	f.cartRepo.ClearNoop = true

	ctx := context.Background()
	_, err := f.svc.ConfirmPayment(ctx, service.ConfirmPaymentRequest{
		UserID:    "user-1",
		SessionID: "sess-paid",
	})
	if !errors.Is(err, service.ErrCartNotCleared) {
		t.Fatalf("expected ErrCartNotCleared, got %v", err)
	}

	// The transaction write comes after the consistency check, so none
	// was created, and the settlement record was flipped to FAILED.
	if f.transactionRepo.CountTransactions() != 0 {
		t.Errorf("expected no transactions, got %d", f.transactionRepo.CountTransactions())
	}
	settlements := f.settlementRepo.AllSettlements()
	if len(settlements) != 1 {
		t.Fatalf("expected 1 settlement record, got %d", len(settlements))
	}
	if settlements[0].Status != domain.SettlementStatusFailed {
		t.Errorf("expected settlement status %s, got %s", domain.SettlementStatusFailed, settlements[0].Status)
	}
}

func TestConfirmPayment_ReleasesLockAfterFailure(t *testing.T) {
	t.Parallel()

	f := newSettlementFixture(true)
	f.seedPaidSession("sess-paid")

	ctx := context.Background()
	_, err := f.svc.ConfirmPayment(ctx, service.ConfirmPaymentRequest{
		UserID:    "user-1",
		SessionID: "sess-paid",
	})
	if !errors.Is(err, service.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	if f.locker.ReleaseCallCount != 1 {
		t.Errorf("expected lock released after failed settlement, got %d releases", f.locker.ReleaseCallCount)
	}

	// A later attempt is able to take the lock again.
	f.seedCart()
	if _, err := f.svc.ConfirmPayment(ctx, service.ConfirmPaymentRequest{
		UserID:    "user-1",
		SessionID: "sess-paid",
	}); err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
}

func TestConfirmPayment_PersistsSettledTotal(t *testing.T) {
	t.Parallel()

	f := newSettlementFixture(true)
	f.seedCart()
	f.seedPaidSession("sess-paid")

	ctx := context.Background()
	result, err := f.svc.ConfirmPayment(ctx, service.ConfirmPaymentRequest{
		UserID:    "user-1",
		SessionID: "sess-paid",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The durable row, not the in-memory struct, must carry the total.
	stored, err := f.settlementRepo.GetByID(ctx, result.Settlement.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.TotalAmount != 2500.00 {
		t.Errorf("persisted settlement total %.2f, want 2500.00", stored.TotalAmount)
	}
	if stored.Status != domain.SettlementStatusCommitted {
		t.Errorf("expected settlement status %s, got %s", domain.SettlementStatusCommitted, stored.Status)
	}
}

func TestGetSettlement_OwnerOnly(t *testing.T) {
	t.Parallel()

	f := newSettlementFixture(true)
	f.seedCart()
	f.seedPaidSession("sess-paid")

	ctx := context.Background()
	result, err := f.svc.ConfirmPayment(ctx, service.ConfirmPaymentRequest{
		UserID:    "user-1",
		SessionID: "sess-paid",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	settlement, err := f.svc.GetSettlement(ctx, "user-1", result.Settlement.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settlement.Status != domain.SettlementStatusCommitted {
		t.Errorf("expected settlement status %s, got %s", domain.SettlementStatusCommitted, settlement.Status)
	}

	// Another customer gets a not-found, not someone else's settlement.
	if _, err := f.svc.GetSettlement(ctx, "user-2", result.Settlement.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another customer, got %v", err)
	}
}

func TestMinorUnits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		price float64
		want  int64
	}{
		{0, 0},
		{12.5, 1250},
		{19.99, 1999},
		{1000.00, 100000},
		{0.01, 1},
		{2500.00, 250000},
	}

	for _, c := range cases {
		if got := service.MinorUnits(c.price); got != c.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", c.price, got, c.want)
		}
	}
}
