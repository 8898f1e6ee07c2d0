package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/catalogcraft/catalog-api/internal/domain"
	"github.com/catalogcraft/catalog-api/pkg/e"
	"github.com/jackc/pgx/v5"
)

// noopLogger глушит вывод в тестах.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...any)        {}
func (noopLogger) Infof(string, ...any)         {}
func (noopLogger) Warnf(string, ...any)         {}
func (noopLogger) Errorf(error, string, ...any) {}

// fakeTx — заглушка pgx.Tx для менеджера транзакций.
// Репозитории в тестах фейковые и транзакцию из контекста не достают,
// поэтому достаточно Commit/Rollback.
type fakeTx struct {
	pgx.Tx
	mu         sync.Mutex
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rolledBack = true
	return nil
}

func (t *fakeTx) state() (committed, rolledBack bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.committed, t.rolledBack
}

type fakePool struct {
	mu        sync.Mutex
	beginErr  error
	commitErr error
	lastTx    *fakeTx
	begun     int
}

func (p *fakePool) Begin(ctx context.Context) (pgx.Tx, error) {
	return p.BeginTx(ctx, pgx.TxOptions{})
}

func (p *fakePool) BeginTx(ctx context.Context, _ pgx.TxOptions) (pgx.Tx, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.beginErr != nil {
		return nil, p.beginErr
	}
	tx := &fakeTx{commitErr: p.commitErr}
	p.lastTx = tx
	p.begun++
	return tx, nil
}

type fakeProductRepo struct {
	mu        sync.Mutex
	products  map[int64]*domain.Product
	infos     map[int64]ProductInfo
	nextID    int64
	createErr error
	updateErr error
	insertErr error
	infosErr  error

	updated        []*domain.Product
	insertedImages []domain.Image
	infosCalls     [][]int64
	listCalls      []*ListProductsReq
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[int64]*domain.Product),
		infos:    make(map[int64]ProductInfo),
	}
}

// seed кладёт продукт в фейковое хранилище, назначая ID как база.
func (f *fakeProductRepo) seed(p *domain.Product) *domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	clone := cloneProduct(p)
	clone.ID = f.nextID
	clone.CreatedAt = time.Now().UTC()
	f.products[clone.ID] = clone
	return cloneProduct(clone)
}

// cloneProduct возвращает копию без накопленных событий —
// так же ведёт себя настоящий репозиторий, собирающий сущность из строки БД.
func cloneProduct(p *domain.Product) *domain.Product {
	return &domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Status:      p.Status,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	clone := cloneProduct(product)
	clone.ID = f.nextID
	clone.CreatedAt = time.Now().UTC()
	f.products[clone.ID] = clone
	return cloneProduct(clone), nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (f *fakeProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.products[product.ID]; !ok {
		return e.ErrProductNotFound
	}
	f.products[product.ID] = cloneProduct(product)
	f.updated = append(f.updated, cloneProduct(product))
	return nil
}

func (f *fakeProductRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infosCalls = append(f.infosCalls, append([]int64(nil), ids...))
	if f.infosErr != nil {
		return nil, f.infosErr
	}
	out := make([]ProductInfo, 0, len(ids))
	for _, id := range ids {
		if info, ok := f.infos[id]; ok {
			out = append(out, info)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) List(ctx context.Context, filter *ListProductsReq) ([]ProductInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, filter)
	var out []ProductInfo
	for _, info := range f.infos {
		if filter.Status != nil && info.Status != *filter.Status {
			continue
		}
		if filter.CategoryID != nil && info.CategoryID != *filter.CategoryID {
			continue
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if filter.Offset < len(out) {
		out = out[filter.Offset:]
	} else {
		out = nil
	}
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeProductRepo) InsertImages(ctx context.Context, images []domain.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.insertedImages = append(f.insertedImages, images...)
	return nil
}

type fakeCategoryRepo struct {
	mu        sync.Mutex
	byName    map[string]*domain.Category
	nextID    int64
	ensureErr error
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byName: make(map[string]*domain.Category)}
}

func (f *fakeCategoryRepo) seed(name string) *domain.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c := &domain.Category{ID: f.nextID, Name: name, CreatedAt: time.Now().UTC()}
	f.byName[name] = c
	return c
}

func (f *fakeCategoryRepo) EnsureByName(ctx context.Context, category *domain.Category) (*domain.Category, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ensureErr != nil {
		return nil, false, f.ensureErr
	}
	if existing, ok := f.byName[category.Name]; ok {
		cp := *existing
		return &cp, false, nil
	}
	f.nextID++
	stored := &domain.Category{
		ID:          f.nextID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   time.Now().UTC(),
	}
	f.byName[category.Name] = stored
	cp := *stored
	return &cp, true, nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.byName {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, e.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Category, 0, len(f.byName))
	for _, c := range f.byName {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeOutboxRepo struct {
	mu        sync.Mutex
	createErr error
	nextID    int64
	created   []*OutboxEvent
}

func (f *fakeOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	cp := *event
	cp.ID = f.nextID
	f.created = append(f.created, &cp)
	return &cp, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*OutboxEvent
	for _, ev := range f.created {
		if ev.Status != Pending || len(out) >= limit {
			continue
		}
		ev.Status = Processing
		cp := *ev
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ev := range f.created {
		if ev.ID == id {
			ev.Status = Processed
		}
	}
	return nil
}

func (f *fakeOutboxRepo) RequeueStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, ev := range f.created {
		if ev.Status == Processing {
			ev.Status = Pending
			n++
		}
	}
	return n, nil
}

func (f *fakeOutboxRepo) events() []*OutboxEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*OutboxEvent, len(f.created))
	copy(out, f.created)
	return out
}

type fakeCacheRepo struct {
	mu      sync.Mutex
	data    map[int64]ProductInfo
	getErr  error
	setErr  error
	deleted [][]int64
	setters int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{data: make(map[int64]ProductInfo)}
}

func (f *fakeCacheRepo) GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make(map[int64]ProductInfo)
	for _, id := range ids {
		if info, ok := f.data[id]; ok {
			out[id] = info
		}
	}
	return out, nil
}

func (f *fakeCacheRepo) SetProducts(ctx context.Context, products []ProductInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setters++
	if f.setErr != nil {
		return f.setErr
	}
	for _, info := range products {
		f.data[info.ID] = info
	}
	return nil
}

func (f *fakeCacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, append([]int64(nil), ids...))
	for _, id := range ids {
		delete(f.data, id)
	}
	return nil
}

func (f *fakeCacheRepo) setCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setters
}

func (f *fakeCacheRepo) deletions() [][]int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]int64, len(f.deleted))
	copy(out, f.deleted)
	return out
}

type fakeImagesInfra struct {
	mu        sync.Mutex
	uploadErr error
	uploads   []*UploadImagesReq
	cleaned   [][]string
}

func (f *fakeImagesInfra) UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploads = append(f.uploads, req)
	keys := make([]string, 0, len(req.Images))
	for i := range req.Images {
		keys = append(keys, fmt.Sprintf("products/%d/image-%d.png", req.ProductID, i))
	}
	return NewUploadImagesRes(keys), nil
}

func (f *fakeImagesInfra) CleanupImages(keys []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleaned = append(f.cleaned, append([]string(nil), keys...))
}

func (f *fakeImagesInfra) cleanups() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.cleaned))
	copy(out, f.cleaned)
	return out
}

// commandFixture собирает командный use case на фейках.
type commandFixture struct {
	products   *fakeProductRepo
	categories *fakeCategoryRepo
	outbox     *fakeOutboxRepo
	cache      *fakeCacheRepo
	images     *fakeImagesInfra
	pool       *fakePool
	uc         *ProductCommandUseCase
}

func newCommandFixture() *commandFixture {
	f := &commandFixture{
		products:   newFakeProductRepo(),
		categories: newFakeCategoryRepo(),
		outbox:     &fakeOutboxRepo{},
		cache:      newFakeCacheRepo(),
		images:     &fakeImagesInfra{},
		pool:       &fakePool{},
	}
	f.uc = NewProductCommandUC(
		f.products,
		f.categories,
		f.outbox,
		f.cache,
		f.images,
		f.pool,
		noopLogger{},
		"catalog-api",
	)
	return f
}

func mustMoney(amountCents int64, currency string) domain.Money {
	m, err := domain.NewMoney(amountCents, currency)
	if err != nil {
		panic(err)
	}
	return m
}

func mustProduct(name string, price domain.Money, categoryID int64, status domain.ProductStatus) *domain.Product {
	p, err := domain.NewProduct(name, "", price, categoryID)
	if err != nil {
		panic(err)
	}
	p.Status = status
	return p
}
