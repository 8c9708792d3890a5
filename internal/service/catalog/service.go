package catalog

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"tienda/internal/domain"
	productrepo "tienda/internal/repository/product"
)

// Service owns the in-memory catalog and the lock that guards it together with any
// cart drawing stock from it. Every mutation is persisted before it returns.
type Service struct {
	mu       sync.Mutex
	repo     productrepo.Repository
	logger   zerolog.Logger
	validate *validator.Validate
	seed     func() []domain.Product
	products []*domain.Product
}

type Option func(*Service)

// WithSeed makes Load fall back to seed() when the backing store does not exist.
func WithSeed(seed func() []domain.Product) Option {
	return func(s *Service) { s.seed = seed }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(repo productrepo.Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		logger:   zerolog.Nop(),
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ApplyFunc runs while the catalog lock is held and the product stock has already
// been decremented. It returns a function that reverts whatever it changed.
type ApplyFunc func(p *domain.Product) (undo func())

// Load replaces the in-memory catalog with the stored one. Later records with an
// already seen id replace the earlier record in place.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound) && s.seed != nil:
		loaded = s.seed()
		if err := s.repo.Save(ctx, loaded); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		s.logger.Info().Int("count", len(loaded)).Msg("catalog: seeded default products")
	case errors.Is(err, domain.ErrNotFound):
		loaded = nil
	case err != nil:
		return fmt.Errorf("load catalog: %w", err)
	}

	index := make(map[int]int, len(loaded))
	products := make([]*domain.Product, 0, len(loaded))
	for i := range loaded {
		p := loaded[i]
		if pos, dup := index[p.ID]; dup {
			s.logger.Warn().Int("id", p.ID).Msg("catalog: duplicate id, keeping the last record")
			products[pos] = &p
			continue
		}
		index[p.ID] = len(products)
		products = append(products, &p)
	}
	s.products = products
	s.logger.Debug().Int("count", len(products)).Msg("catalog: loaded")
	return nil
}

// List returns copies of every product in insertion order.
func (s *Service) List(_ context.Context) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Service) Get(_ context.Context, id int) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, _ := s.find(id)
	if p == nil {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return *p, nil
}

// Add appends a new product. Ids are unique within the catalog.
func (s *Service) Add(ctx context.Context, p domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	if err := s.validate.Struct(p); err != nil {
		return validationError(err)
	}
	if p.Description == "" {
		p.Description = domain.DefaultDescription
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, _ := s.find(p.ID); existing != nil {
		return fmt.Errorf("product %d: %w", p.ID, domain.ErrDuplicateID)
	}
	s.products = append(s.products, &p)
	if err := s.persist(ctx); err != nil {
		s.products = s.products[:len(s.products)-1]
		return err
	}
	s.logger.Info().Int("id", p.ID).Str("name", p.Name).Msg("catalog: product added")
	return nil
}

// Delete removes the product with the given id.
func (s *Service) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, pos := s.find(id)
	if p == nil {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	previous := s.products
	s.products = append(append(make([]*domain.Product, 0, len(previous)-1), previous[:pos]...), previous[pos+1:]...)
	if err := s.persist(ctx); err != nil {
		s.products = previous
		return err
	}
	s.logger.Info().Int("id", id).Msg("catalog: product deleted")
	return nil
}

// Withdraw takes qty units of product id out of stock and runs apply in the same
// critical section. Stock, whatever apply changed and the stored catalog change
// together: on any failure both are reverted and nothing is saved.
func (s *Service) Withdraw(ctx context.Context, id, qty int, apply ApplyFunc) error {
	if qty < 1 {
		return fmt.Errorf("quantity %d: %w", qty, domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, _ := s.find(id)
	if p == nil {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	if qty > p.Stock {
		return fmt.Errorf("product %d: requested %d, %d left: %w", id, qty, p.Stock, domain.ErrInsufficientStock)
	}

	p.Stock -= qty
	undo := func() {}
	if apply != nil {
		if u := apply(p); u != nil {
			undo = u
		}
	}
	if err := s.persist(ctx); err != nil {
		undo()
		p.Stock += qty
		return err
	}
	s.logger.Debug().Int("id", id).Int("quantity", qty).Int("stock", p.Stock).Msg("catalog: stock withdrawn")
	return nil
}

func (s *Service) find(id int) (*domain.Product, int) {
	for i, p := range s.products {
		if p.ID == id {
			return p, i
		}
	}
	return nil, -1
}

func (s *Service) snapshot() []domain.Product {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out
}

func (s *Service) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.snapshot()); err != nil {
		s.logger.Error().Err(err).Msg("catalog: save failed")
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, strings.ToLower(fe.Field()))
	case "excludesall":
		return fmt.Errorf("%w: %s must not contain a comma", domain.ErrInvalidInput, strings.ToLower(fe.Field()))
	case "gt":
		return fmt.Errorf("%w: %s must be greater than %s", domain.ErrInvalidInput, strings.ToLower(fe.Field()), fe.Param())
	case "gte":
		return fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, strings.ToLower(fe.Field()))
	}
	return fmt.Errorf("%w: %s failed %s", domain.ErrInvalidInput, strings.ToLower(fe.Field()), fe.Tag())
}
