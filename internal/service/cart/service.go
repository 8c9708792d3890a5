package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"tienda/internal/domain"
	cartrepo "tienda/internal/repository/cart"
	"tienda/internal/service/catalog"
)

// EmptyMessage is what View renders for a cart with no lines.
const EmptyMessage = "The cart is empty."

type Service struct {
	catalog  *catalog.Service
	snapshot cartrepo.Repository
	logger   zerolog.Logger

	mu    sync.Mutex
	lines []domain.CartLine
}

func New(catalog *catalog.Service, snapshot cartrepo.Repository, logger zerolog.Logger) *Service {
	return &Service{catalog: catalog, snapshot: snapshot, logger: logger}
}

// Add moves qty units of a product from the catalog into the cart. A product
// already in the cart gets its line quantity increased instead of a second line.
// The whole operation happens under the catalog lock, so stock never goes
// negative and the cart never holds more than was taken from stock.
func (s *Service) Add(ctx context.Context, productID, qty int) error {
	err := s.catalog.Withdraw(ctx, productID, qty, func(p *domain.Product) func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i := range s.lines {
			if s.lines[i].Product.ID == p.ID {
				// The catalog may hold a new product under the same id.
				previous := s.lines[i].Product
				s.lines[i].Product = p
				s.lines[i].Quantity += qty
				idx := i
				return func() {
					s.mu.Lock()
					s.lines[idx].Product = previous
					s.lines[idx].Quantity -= qty
					s.mu.Unlock()
				}
			}
		}
		s.lines = append(s.lines, domain.CartLine{Product: p, Quantity: qty})
		return func() {
			s.mu.Lock()
			s.lines = s.lines[:len(s.lines)-1]
			s.mu.Unlock()
		}
	})
	if err != nil {
		return err
	}
	s.logger.Info().Int("product_id", productID).Int("quantity", qty).Msg("cart: line added")
	return nil
}

type LineSummary struct {
	ProductID int
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Summary is a point-in-time view of the cart.
type Summary struct {
	Lines []LineSummary
	Total decimal.Decimal
}

func (s Summary) Empty() bool { return len(s.Lines) == 0 }

// Render writes one row per line followed by the total, or EmptyMessage.
func (s Summary) Render(w io.Writer) error {
	if s.Empty() {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tProduct\tQty\tUnit\tSubtotal")
	for _, l := range s.Lines {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", l.ProductID, l.Name, l.Quantity, l.UnitPrice.StringFixed(2), l.Subtotal.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total: %s\n", s.Total.StringFixed(2))
	return err
}

// View lists every line with its subtotal and the cart total. Prices are the
// current catalog prices of the products held by the cart.
func (s *Service) View(_ context.Context) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{Total: decimal.Zero}
	for _, l := range s.lines {
		sub := l.Subtotal()
		sum.Lines = append(sum.Lines, LineSummary{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price,
			Subtotal:  sub,
		})
		sum.Total = sum.Total.Add(sub)
	}
	return sum
}

// Lines returns a copy of the cart lines in insertion order. The products are
// copies too.
func (s *Service) Lines(_ context.Context) []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, 0, len(s.lines))
	for _, l := range s.lines {
		p := *l.Product
		out = append(out, domain.CartLine{Product: &p, Quantity: l.Quantity})
	}
	return out
}

// Clear empties the cart. Stock already taken is not returned to the catalog.
func (s *Service) Clear(_ context.Context) {
	s.mu.Lock()
	n := len(s.lines)
	s.lines = nil
	s.mu.Unlock()
	s.logger.Info().Int("lines", n).Msg("cart: cleared")
}

// Persist replaces the saved snapshot with the current cart lines.
func (s *Service) Persist(ctx context.Context) error {
	s.mu.Lock()
	snap := make([]domain.CartSnapshotLine, 0, len(s.lines))
	for _, l := range s.lines {
		snap = append(snap, domain.CartSnapshotLine{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Quantity:  l.Quantity,
			Price:     l.Product.Price,
		})
	}
	s.mu.Unlock()

	if err := s.snapshot.Save(ctx, snap); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	s.logger.Info().Int("lines", len(snap)).Msg("cart: snapshot saved")
	return nil
}

// Restore replays the saved snapshot through Add, so every restored line draws
// stock from the catalog again. Lines that can no longer be satisfied are skipped
// and reported together in the returned error. It returns the number of lines
// restored.
func (s *Service) Restore(ctx context.Context) (int, error) {
	snap, err := s.snapshot.Load(ctx)
	if err != nil && !errors.Is(err, domain.ErrMalformedRecord) {
		return 0, fmt.Errorf("load cart: %w", err)
	}
	errs := err

	restored := 0
	for _, line := range snap {
		if err := s.Add(ctx, line.ProductID, line.Quantity); err != nil {
			s.logger.Warn().Err(err).Int("product_id", line.ProductID).Msg("cart: snapshot line skipped")
			errs = multierr.Append(errs, fmt.Errorf("restore %s (%d): %w", line.Name, line.ProductID, err))
			continue
		}
		restored++
	}
	s.logger.Info().Int("restored", restored).Int("saved", len(snap)).Msg("cart: snapshot restored")
	return restored, errs
}
