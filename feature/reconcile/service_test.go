package reconcile_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"delivery-reconciler/core/archive/mocks"
	"delivery-reconciler/core/database"
	"delivery-reconciler/core/ledger"
	ledgermocks "delivery-reconciler/core/ledger/mocks"
	"delivery-reconciler/core/verify"
	"delivery-reconciler/feature/reconcile"
	"delivery-reconciler/feature/reconcile/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Delivery{}, &models.StoreLedgerConfig{}))
	return db
}

func seedStores(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.StoreLedgerConfig{
		StoreID:         "Houdemont",
		ExternalTableID: "my7zunxprumahmm",
		InvoiceColumn:   "RefFacture",
		SupplierColumn:  "Fournisseurs",
	}).Error)
	require.NoError(t, db.Create(&models.StoreLedgerConfig{
		StoreID:         "Frouard",
		ExternalTableID: "mrr733dfb8wtt9b",
		InvoiceColumn:   "RefFacture",
		SupplierColumn:  "Fournisseurs",
	}).Error)
}

func newService(t *testing.T, db *gorm.DB, client ledger.Client, archiver *reconcile.Archiver) *reconcile.Service {
	t.Helper()
	cache, err := verify.NewCache(verify.NewMemoryStore(), client,
		verify.Config{FoundTTL: time.Hour, NotFoundTTL: time.Minute}, zap.NewNop())
	require.NoError(t, err)

	return reconcile.NewService(
		reconcile.NewGormDeliveryRepository(db),
		reconcile.NewGormConfigProvider(db),
		cache,
		archiver,
		zap.NewNop(),
	)
}

func TestReconcile_EndToEnd(t *testing.T) {
	db := setupDB(t)
	seedStores(t, db)

	require.NoError(t, db.Create(&models.Delivery{
		ID: 1, StoreID: "Houdemont", InvoiceRef: "F5162713", Supplier: "JJA Five",
	}).Error)
	require.NoError(t, db.Create(&models.Delivery{
		ID: 2, StoreID: "Frouard", InvoiceRef: "F5162713", Supplier: "JJA Five",
	}).Error)

	client := new(ledgermocks.Client)
	client.On("FetchRows", mock.Anything, "my7zunxprumahmm", "RefFacture", "F5162713").
		Return([]ledger.Row{{"RefFacture": "F5162713", "Fournisseurs": "JJA Five"}}, nil)
	client.On("FetchRows", mock.Anything, "mrr733dfb8wtt9b", "RefFacture", "F5162713").
		Return([]ledger.Row{}, nil)

	svc := newService(t, db, client, nil)

	outcome, err := svc.Reconcile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, reconcile.OutcomeReconciled, outcome)

	var d models.Delivery
	require.NoError(t, db.First(&d, 1).Error)
	assert.True(t, d.Reconciled)
	require.NotNil(t, d.ReconciledAt)
	assert.Contains(t, d.MatchedPayload, "JJA Five")

	// Same invoice and supplier, but Frouard's table has no such row.
	outcome, err = svc.Reconcile(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, reconcile.OutcomeNotReconciled, outcome)

	// Fresh destination: reusing d would leak its primary key into the
	// query conditions.
	var d2 models.Delivery
	require.NoError(t, db.First(&d2, 2).Error)
	assert.False(t, d2.Reconciled)
	assert.Nil(t, d2.ReconciledAt)

	client.AssertExpectations(t)
}

func TestReconcile_CachedSecondRun(t *testing.T) {
	db := setupDB(t)
	seedStores(t, db)
	require.NoError(t, db.Create(&models.Delivery{
		ID: 1, StoreID: "Houdemont", InvoiceRef: "F5162713", Supplier: "JJA Five",
	}).Error)

	client := new(ledgermocks.Client)
	client.On("FetchRows", mock.Anything, "my7zunxprumahmm", "RefFacture", "F5162713").
		Return([]ledger.Row{{"Fournisseurs": "JJA Five"}}, nil).Once()

	svc := newService(t, db, client, nil)

	_, err := svc.Reconcile(context.Background(), 1)
	require.NoError(t, err)
	// Second run hits the cache; the mock allows exactly one call.
	_, err = svc.Reconcile(context.Background(), 1)
	require.NoError(t, err)

	client.AssertExpectations(t)
}

func TestReconcile_DeliveryNotFound(t *testing.T) {
	db := setupDB(t)
	svc := newService(t, db, new(ledgermocks.Client), nil)

	outcome, err := svc.Reconcile(context.Background(), 99)
	assert.Equal(t, reconcile.OutcomeFailed, outcome)
	assert.True(t, errors.Is(err, reconcile.ErrDeliveryNotFound))
}

func TestReconcile_ConfigMissing(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.Delivery{
		ID: 1, StoreID: "Nancy", InvoiceRef: "F1", Supplier: "A",
	}).Error)

	client := new(ledgermocks.Client)
	svc := newService(t, db, client, nil)

	outcome, err := svc.Reconcile(context.Background(), 1)
	assert.Equal(t, reconcile.OutcomeFailed, outcome)
	assert.True(t, reconcile.IsConfigMissing(err))

	// No ledger call may have happened.
	client.AssertNotCalled(t, "FetchRows", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcile_LookupFailedLeavesDeliveryUntouched(t *testing.T) {
	db := setupDB(t)
	seedStores(t, db)
	require.NoError(t, db.Create(&models.Delivery{
		ID: 1, StoreID: "Houdemont", InvoiceRef: "F5162713", Supplier: "JJA Five",
	}).Error)

	client := new(ledgermocks.Client)
	client.On("FetchRows", mock.Anything, "my7zunxprumahmm", "RefFacture", "F5162713").
		Return(nil, &ledger.LookupError{Kind: ledger.KindUnreachable, TableID: "my7zunxprumahmm"})

	svc := newService(t, db, client, nil)

	outcome, err := svc.Reconcile(context.Background(), 1)
	assert.Equal(t, reconcile.OutcomeFailed, outcome)
	assert.True(t, errors.Is(err, ledger.ErrUnreachable))

	var d models.Delivery
	require.NoError(t, db.First(&d, 1).Error)
	assert.False(t, d.Reconciled)
	assert.Nil(t, d.ReconciledAt)
}

func TestReconcilePending(t *testing.T) {
	db := setupDB(t)
	seedStores(t, db)

	require.NoError(t, db.Create(&models.Delivery{
		ID: 1, StoreID: "Houdemont", InvoiceRef: "F5162713", Supplier: "JJA Five",
	}).Error)
	require.NoError(t, db.Create(&models.Delivery{
		ID: 2, StoreID: "Frouard", InvoiceRef: "F5162713", Supplier: "JJA Five",
	}).Error)
	require.NoError(t, db.Create(&models.Delivery{
		ID: 3, StoreID: "Nancy", InvoiceRef: "F1", Supplier: "A",
	}).Error)
	// Already reconciled: excluded from the batch.
	now := time.Now()
	require.NoError(t, db.Create(&models.Delivery{
		ID: 4, StoreID: "Houdemont", InvoiceRef: "F0", Supplier: "B",
		Reconciled: true, ReconciledAt: &now,
	}).Error)

	client := new(ledgermocks.Client)
	client.On("FetchRows", mock.Anything, "my7zunxprumahmm", "RefFacture", "F5162713").
		Return([]ledger.Row{{"Fournisseurs": "JJA Five"}}, nil)
	client.On("FetchRows", mock.Anything, "mrr733dfb8wtt9b", "RefFacture", "F5162713").
		Return([]ledger.Row{}, nil)

	svc := newService(t, db, client, nil)

	report, err := svc.ReconcilePending(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.Reconciled)
	assert.Equal(t, 1, report.Summary.NotReconciled)
	assert.Equal(t, 1, report.Summary.Failed)
	require.Len(t, report.Results, 3)
	assert.Equal(t, reconcile.OutcomeFailed, report.Results[2].Outcome)
	assert.NotEmpty(t, report.Results[2].Error)
}

func TestReconcilePendingAndArchive(t *testing.T) {
	db := setupDB(t)
	seedStores(t, db)
	require.NoError(t, db.Create(&models.Delivery{
		ID: 1, StoreID: "Houdemont", InvoiceRef: "F5162713", Supplier: "JJA Five",
	}).Error)

	client := new(ledgermocks.Client)
	client.On("FetchRows", mock.Anything, "my7zunxprumahmm", "RefFacture", "F5162713").
		Return([]ledger.Row{{"Fournisseurs": "JJA Five"}}, nil)

	store := new(mocks.Client)
	store.On("BucketExists", mock.Anything, "reports").Return(true, nil)
	store.On("PutObject", mock.Anything, "reports", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			body, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			assert.Contains(t, string(body), `"reconciled": 1`)
		}).
		Return(minio.UploadInfo{}, nil)

	svc := newService(t, db, client, reconcile.NewArchiver(store, "reports"))

	report, object, err := svc.ReconcilePendingAndArchive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Reconciled)
	assert.Contains(t, object, "reports/reconcile-")

	store.AssertExpectations(t)
}

func TestReconcilePendingAndArchive_ArchiveFailureDoesNotFailRun(t *testing.T) {
	db := setupDB(t)
	seedStores(t, db)
	require.NoError(t, db.Create(&models.Delivery{
		ID: 1, StoreID: "Frouard", InvoiceRef: "F1", Supplier: "A",
	}).Error)

	client := new(ledgermocks.Client)
	client.On("FetchRows", mock.Anything, "mrr733dfb8wtt9b", "RefFacture", "F1").
		Return([]ledger.Row{}, nil)

	store := new(mocks.Client)
	store.On("BucketExists", mock.Anything, "reports").Return(false, errors.New("storage down"))

	svc := newService(t, db, client, reconcile.NewArchiver(store, "reports"))

	report, object, err := svc.ReconcilePendingAndArchive(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, report)
	assert.Empty(t, object)
}
