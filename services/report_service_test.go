package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kendall-kelly/cookie-orders-api/models"
	"github.com/kendall-kelly/cookie-orders-api/repository"
	"github.com/kendall-kelly/cookie-orders-api/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderReader struct {
	lines      []models.OrderLine
	err        error
	start, end time.Time
}

func (s *stubOrderReader) ListOrdersInRange(ctx context.Context, start, end time.Time) ([]models.OrderLine, error) {
	s.start, s.end = start, end
	return s.lines, s.err
}

func TestWeeklyReportQueriesResolvedRange(t *testing.T) {
	reader := &stubOrderReader{}
	svc := NewReportService(reader, nil, nil)

	r, err := svc.ParseRange("2024-01-01", "2024-01-07")
	require.NoError(t, err)

	rep, err := svc.Weekly(context.Background(), r)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), reader.start)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), reader.end)
	assert.Equal(t, r.Start, rep.Start)
	assert.Equal(t, r.End, rep.End)
	assert.Empty(t, rep.QuantityByFlavor)
}

func TestWeeklyReportUsesLocation(t *testing.T) {
	reader := &stubOrderReader{}
	loc := time.FixedZone("BRT", -3*60*60)
	svc := NewReportService(reader, loc, nil)
	assert.Equal(t, loc, svc.Location())

	r, err := svc.ParseRange("2024-01-01", "2024-01-01")
	require.NoError(t, err)
	_, err = svc.Weekly(context.Background(), r)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC), reader.start.UTC())
	assert.Equal(t, time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC), reader.end.UTC())
}

func TestWeeklyReportPropagatesStorageErrors(t *testing.T) {
	reader := &stubOrderReader{err: repository.ErrStorageUnavailable}
	svc := NewReportService(reader, nil, nil)

	r, err := svc.ParseRange("2024-01-01", "2024-01-07")
	require.NoError(t, err)

	_, err = svc.Weekly(context.Background(), r)
	assert.ErrorIs(t, err, repository.ErrStorageUnavailable)
}

func TestWeeklyReportAgainstDatabase(t *testing.T) {
	repo := repository.New(testutil.NewTestDB(t))
	ctx := context.Background()

	ana, err := repo.CreateCustomer(ctx, "Ana", "", "")
	require.NoError(t, err)
	nutella, err := repo.CreateProduct(ctx, "Nutella", decimal.RequireFromString("4.0"), decimal.RequireFromString("1.7"))
	require.NoError(t, err)
	tradicional, err := repo.CreateProduct(ctx, "Tradicional", decimal.RequireFromString("3.5"), decimal.RequireFromString("1.0"))
	require.NoError(t, err)

	onFirstDay := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	onLastDay := time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	_, err = repo.CreateOrder(ctx, ana, nutella, 2, &onFirstDay)
	require.NoError(t, err)
	_, err = repo.CreateOrder(ctx, ana, tradicional, 3, &onLastDay)
	require.NoError(t, err)
	_, err = repo.CreateOrder(ctx, ana, tradicional, 10, &nextDay)
	require.NoError(t, err)

	svc := NewReportService(repo, time.UTC, nil)
	r, err := svc.ParseRange("2024-01-01", "2024-01-07")
	require.NoError(t, err)

	rep, err := svc.Weekly(ctx, r)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("18.5").Equal(rep.TotalRevenue), "revenue %s", rep.TotalRevenue)
	assert.True(t, decimal.RequireFromString("6.4").Equal(rep.TotalCost), "cost %s", rep.TotalCost)
	assert.True(t, decimal.RequireFromString("12.1").Equal(rep.TotalProfit), "profit %s", rep.TotalProfit)
	assert.Equal(t, 5, rep.TotalQuantity)
	assert.Equal(t, 1, rep.DistinctCustomers)
	assert.Equal(t, map[string]int{"Nutella": 2, "Tradicional": 3}, rep.QuantityByFlavor)
}

type stubProductCreator struct {
	existing map[string]bool
	failOn   string
	err      error
	calls    int
}

func (s *stubProductCreator) CreateProduct(ctx context.Context, flavor string, price, cost decimal.Decimal) (uint, error) {
	s.calls++
	if flavor == s.failOn {
		return 0, s.err
	}
	if s.existing[flavor] {
		return 0, &repository.ConstraintError{Kind: repository.ConstraintUnique, Err: errors.New("duplicate key")}
	}
	s.existing[flavor] = true
	return uint(s.calls), nil
}

func TestSeedDefaultProductsIsIdempotent(t *testing.T) {
	repo := repository.New(testutil.NewTestDB(t))
	svc := NewSeedService(repo, nil)
	ctx := context.Background()

	first, err := svc.SeedDefaultProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Created: 5, Skipped: 0}, first)

	second, err := svc.SeedDefaultProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Created: 0, Skipped: 5}, second)

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, len(DefaultCatalog))
	for i, product := range products {
		assert.Equal(t, DefaultCatalog[i].Flavor, product.Flavor)
		assert.True(t, DefaultCatalog[i].Price.Equal(product.Price))
		assert.True(t, DefaultCatalog[i].Cost.Equal(product.Cost))
	}
}

func TestSeedDefaultProductsSkipsOnlyExistingFlavors(t *testing.T) {
	creator := &stubProductCreator{existing: map[string]bool{"Ninho": true}}
	svc := NewSeedService(creator, nil)

	result, err := svc.SeedDefaultProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Created: 4, Skipped: 1}, result)
}

func TestSeedDefaultProductsPropagatesOtherErrors(t *testing.T) {
	creator := &stubProductCreator{
		existing: map[string]bool{},
		failOn:   "Ninho",
		err:      repository.ErrStorageUnavailable,
	}
	svc := NewSeedService(creator, nil)

	result, err := svc.SeedDefaultProducts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrStorageUnavailable)
	assert.Equal(t, 2, result.Created, "products before the failure are kept")
	assert.Equal(t, 3, creator.calls, "seeding stops at the first unexpected error")
}

func sampleReport() models.WeeklyReport {
	lines := []models.OrderLine{
		{OrderID: 1, CustomerName: "Ana", Flavor: "Nutella", Quantity: 2,
			UnitPrice: decimal.RequireFromString("4.0"), UnitCost: decimal.RequireFromString("1.7"),
			PlacedAt: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)},
		{OrderID: 2, CustomerName: "Bruno", Flavor: "Red", Quantity: 1,
			UnitPrice: decimal.RequireFromString("3.5"), UnitCost: decimal.RequireFromString("1.0"),
			PlacedAt: time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)},
	}
	return models.WeeklyReport{
		Start:             time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:               time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		TotalRevenue:      decimal.RequireFromString("11.5"),
		TotalCost:         decimal.RequireFromString("4.4"),
		TotalProfit:       decimal.RequireFromString("7.1"),
		TotalQuantity:     3,
		DistinctCustomers: 2,
		QuantityByFlavor:  map[string]int{"Nutella": 2, "Red": 1},
		Orders:            lines,
	}
}

func TestRenderWeeklyReportPDF(t *testing.T) {
	pdf, err := RenderWeeklyReportPDF(sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output should be a PDF document")
}

func TestRenderEmptyWeeklyReportPDF(t *testing.T) {
	pdf, err := RenderWeeklyReportPDF(models.WeeklyReport{QuantityByFlavor: map[string]int{}})
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}

func TestArchiveReport(t *testing.T) {
	storage := NewMockStorage()
	archiver := NewReportArchiver(storage, nil)
	archiver.now = func() time.Time { return time.Unix(1704844800, 0) }
	assert.True(t, archiver.Enabled())

	archived, err := archiver.Archive(context.Background(), sampleReport(), []byte("%PDF-1.3 test"))
	require.NoError(t, err)

	assert.Equal(t, "reports/weekly/2024-01-01_2024-01-07_1704844800.pdf", archived.Key)
	assert.Contains(t, archived.URL, archived.Key)
	assert.Equal(t, []byte("%PDF-1.3 test"), storage.Objects()[archived.Key])
	assert.Equal(t, "application/pdf", storage.ContentType(archived.Key))
}

func TestArchiveReportDisabled(t *testing.T) {
	archiver := NewReportArchiver(nil, nil)
	assert.False(t, archiver.Enabled())

	_, err := archiver.Archive(context.Background(), sampleReport(), []byte("%PDF"))
	assert.ErrorIs(t, err, ErrArchiveDisabled)
}

func TestArchiveReportUploadFailure(t *testing.T) {
	storage := NewMockStorage()
	storage.PutErr = errors.New("bucket unreachable")
	archiver := NewReportArchiver(storage, nil)

	_, err := archiver.Archive(context.Background(), sampleReport(), []byte("%PDF"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket unreachable")
	assert.Empty(t, storage.Objects())
}

func TestMockStoragePresignMissingObject(t *testing.T) {
	storage := NewMockStorage()

	_, err := storage.PresignedURL(context.Background(), "reports/weekly/missing.pdf")
	assert.Error(t, err)

	url, err := storage.PresignedURL(context.Background(), "")
	assert.NoError(t, err)
	assert.Empty(t, url)
}
