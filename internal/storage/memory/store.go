package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/posledger/internal/domain"
)

// Store: in-memory реализация LedgerStore. Транзакции сериализуются одним мьютексом,
// изменения копятся в tx и применяются только при успешном завершении fn.
type Store struct {
	mu sync.Mutex

	products    map[int64]domain.Product
	skus        map[string]int64
	sales       map[int64]domain.Sale
	saleNumbers map[string]int64
	movements   []domain.StockMovement

	nextProductID  int64
	nextSaleID     int64
	nextMovementID int64

	outbox *OutboxRepository
	now    func() time.Time
}

// NewStore создаёт пустое хранилище с собственным outbox.
func NewStore() *Store {
	return &Store{
		products:    make(map[int64]domain.Product),
		skus:        make(map[string]int64),
		sales:       make(map[int64]domain.Sale),
		saleNumbers: make(map[string]int64),
		outbox:      NewOutboxRepository(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Outbox возвращает outbox, в который пишут транзакции ledger.
func (s *Store) Outbox() *OutboxRepository {
	return s.outbox
}

// WithinTx выполняет fn под глобальной блокировкой. Внутри fn нельзя вызывать
// нетранзакционные методы Store: мьютекс не реентерабельный.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx domain.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memoryTx{
		store:    s,
		products: make(map[int64]domain.Product),
		sales:    make(map[int64]domain.Sale),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tx.commit()
	return nil
}

func (s *Store) GetSale(ctx context.Context, id int64) (domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, ok := s.sales[id]
	if !ok {
		return domain.Sale{}, fmt.Errorf("sale %d: %w", id, domain.ErrSaleNotFound)
	}
	return cloneSale(sale), nil
}

func (s *Store) ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]domain.Sale, 0)
	for _, sale := range s.sales {
		if filter.Matches(sale) {
			matched = append(matched, sale)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if filter.Offset >= len(matched) {
		return []domain.Sale{}, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	result := make([]domain.Sale, 0, len(matched))
	for _, sale := range matched {
		result = append(result, cloneSale(sale))
	}
	return result, nil
}

func (s *Store) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.skus[in.SKU]; exists {
		return domain.Product{}, fmt.Errorf("sku %q: %w", in.SKU, domain.ErrDuplicateSKU)
	}

	now := s.now()
	s.nextProductID++
	product := domain.Product{
		ID:                 s.nextProductID,
		SKU:                in.SKU,
		Name:               in.Name,
		Category:           in.Category,
		UnitPriceCents:     in.UnitPriceCents,
		TaxRateBasisPoints: in.TaxRateBasisPoints,
		StockQuantity:      in.StockQuantity,
		ReorderLevel:       in.ReorderLevel,
		Notes:              in.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.products[product.ID] = product
	s.skus[product.SKU] = product.ID
	return product, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	return product, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, upd domain.ProductUpdate) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	product = upd.Apply(product, s.now())
	s.products[id] = product
	return product, nil
}

// ListProducts возвращает товары, упорядоченные по названию.
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Product, 0, len(s.products))
	for _, product := range s.products {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name == result[j].Name {
			return result[i].ID < result[j].ID
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (s *Store) CountLowStock(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, product := range s.products {
		if product.IsLowStock() {
			count++
		}
	}
	return count, nil
}

// ListMovements возвращает движения товара от новых к старым.
func (s *Store) ListMovements(ctx context.Context, productID int64, limit int) ([]domain.StockMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.StockMovement, 0)
	for i := len(s.movements) - 1; i >= 0; i-- {
		if s.movements[i].ProductID != productID {
			continue
		}
		result = append(result, s.movements[i])
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

// Ping успешен, пока ctx не отменён; нужен для health-check наравне с SQL-хранилищами.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

type memoryTx struct {
	store *Store

	products  map[int64]domain.Product
	sales     map[int64]domain.Sale
	inserted  []int64
	movements []domain.StockMovement
	outbox    []domain.OutboxMessage
}

func (tx *memoryTx) product(id int64) (domain.Product, error) {
	if product, ok := tx.products[id]; ok {
		return product, nil
	}
	product, ok := tx.store.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	return product, nil
}

func (tx *memoryTx) LookupProduct(ctx context.Context, id int64) (domain.Product, error) {
	return tx.product(id)
}

func (tx *memoryTx) DebitStock(ctx context.Context, id, qty int64) (domain.Product, error) {
	product, err := tx.product(id)
	if err != nil {
		return domain.Product{}, err
	}
	if product.StockQuantity < qty {
		return domain.Product{}, fmt.Errorf("%w: product %d has %d, requested %d",
			domain.ErrInsufficientStock, id, product.StockQuantity, qty)
	}
	product.StockQuantity -= qty
	product.UpdatedAt = tx.store.now()
	tx.products[id] = product
	return product, nil
}

func (tx *memoryTx) CreditStock(ctx context.Context, id, qty int64) (domain.Product, error) {
	product, err := tx.product(id)
	if err != nil {
		return domain.Product{}, err
	}
	product.StockQuantity += qty
	product.UpdatedAt = tx.store.now()
	tx.products[id] = product
	return product, nil
}

// InsertSale назначает ID; пустой номер выводится из него.
func (tx *memoryTx) InsertSale(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	if sale.Timestamp.IsZero() {
		sale.Timestamp = tx.store.now()
	}
	id := tx.store.nextSaleID + 1
	if sale.SaleNumber == "" {
		sale.SaleNumber = domain.SaleNumberFor(sale.Timestamp, id)
	}
	if tx.saleNumberTaken(sale.SaleNumber) {
		return domain.Sale{}, fmt.Errorf("sale number %q: %w", sale.SaleNumber, domain.ErrDuplicateSaleNumber)
	}

	tx.store.nextSaleID = id
	sale.ID = id
	sale = cloneSale(sale)
	tx.sales[sale.ID] = sale
	tx.inserted = append(tx.inserted, sale.ID)
	return cloneSale(sale), nil
}

func (tx *memoryTx) saleNumberTaken(number string) bool {
	if _, exists := tx.store.saleNumbers[number]; exists {
		return true
	}
	for _, pending := range tx.sales {
		if pending.SaleNumber == number {
			return true
		}
	}
	return false
}

func (tx *memoryTx) LookupSale(ctx context.Context, id int64) (domain.Sale, error) {
	if sale, ok := tx.sales[id]; ok {
		return cloneSale(sale), nil
	}
	sale, ok := tx.store.sales[id]
	if !ok {
		return domain.Sale{}, fmt.Errorf("sale %d: %w", id, domain.ErrSaleNotFound)
	}
	return cloneSale(sale), nil
}

func (tx *memoryTx) UpdateSaleStatus(ctx context.Context, id int64, status domain.SaleStatus, note string) error {
	sale, err := tx.LookupSale(ctx, id)
	if err != nil {
		return err
	}
	sale.Status = status
	sale.Note = note
	tx.sales[id] = sale
	return nil
}

func (tx *memoryTx) AppendMovement(ctx context.Context, movement domain.StockMovement) error {
	if movement.OccurredAt.IsZero() {
		movement.OccurredAt = tx.store.now()
	}
	tx.movements = append(tx.movements, movement)
	return nil
}

func (tx *memoryTx) EnqueueOutbox(ctx context.Context, msg domain.OutboxMessage) error {
	tx.outbox = append(tx.outbox, msg)
	return nil
}

func (tx *memoryTx) commit() {
	s := tx.store
	for id, product := range tx.products {
		s.products[id] = product
	}
	for id, sale := range tx.sales {
		s.sales[id] = sale
	}
	for _, id := range tx.inserted {
		s.saleNumbers[tx.sales[id].SaleNumber] = id
	}
	for _, movement := range tx.movements {
		s.nextMovementID++
		movement.ID = s.nextMovementID
		s.movements = append(s.movements, movement)
	}
	for _, msg := range tx.outbox {
		s.outbox.Enqueue(msg)
	}
}

func cloneSale(src domain.Sale) domain.Sale {
	dst := src
	dst.Lines = append([]domain.SaleLine(nil), src.Lines...)
	return dst
}

var (
	_ domain.LedgerStore = (*Store)(nil)
	_ domain.Tx          = (*memoryTx)(nil)
)
