// Package record encodes catalog and cart snapshot entries as comma-delimited text
// lines. There is no quoting or escaping: a delimiter inside a text field shifts the
// remaining fields on the next read.
package record

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"tienda/internal/domain"
)

// Delimiter separates fields within a record.
const Delimiter = ","

const (
	productMinFields  = 4
	cartLineMinFields = 4
)

// ParseProduct decodes `id,name,price,stock[,description]`.
func ParseProduct(line string) (domain.Product, error) {
	fields := split(line)
	if len(fields) < productMinFields {
		return domain.Product{}, malformed(line, fmt.Sprintf("expected at least %d fields, got %d", productMinFields, len(fields)))
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.Product{}, malformed(line, "id is not an integer")
	}
	if id < 1 {
		return domain.Product{}, malformed(line, "id must be positive")
	}
	if fields[1] == "" {
		return domain.Product{}, malformed(line, "name is empty")
	}
	price, err := decimal.NewFromString(fields[2])
	if err != nil {
		return domain.Product{}, malformed(line, "price is not a decimal")
	}
	if price.IsNegative() {
		return domain.Product{}, malformed(line, "price is negative")
	}
	stock, err := strconv.Atoi(fields[3])
	if err != nil {
		return domain.Product{}, malformed(line, "stock is not an integer")
	}
	if stock < 0 {
		return domain.Product{}, malformed(line, "stock is negative")
	}

	desc := domain.DefaultDescription
	if len(fields) > productMinFields && fields[4] != "" {
		desc = fields[4]
	}

	return domain.Product{
		ID:          id,
		Name:        fields[1],
		Price:       price,
		Stock:       stock,
		Description: desc,
	}, nil
}

// FormatProduct is the inverse of ParseProduct.
func FormatProduct(p domain.Product) string {
	fields := []string{
		strconv.Itoa(p.ID),
		p.Name,
		p.Price.String(),
		strconv.Itoa(p.Stock),
	}
	if p.Description != "" {
		fields = append(fields, p.Description)
	}
	return strings.Join(fields, Delimiter)
}

// DecodeProducts reads every record from r. Malformed records are skipped; the
// returned products are usable even when err is non-nil, as long as err only holds
// ParseErrors (check with errors.Is(err, domain.ErrMalformedRecord)).
func DecodeProducts(r io.Reader) ([]domain.Product, error) {
	var (
		products []domain.Product
		skipped  error
	)
	err := scan(r, func(n int, line string) {
		p, err := ParseProduct(line)
		if err != nil {
			skipped = multierr.Append(skipped, atLine(err, n))
			return
		}
		products = append(products, p)
	})
	if err != nil {
		return products, err
	}
	return products, skipped
}

// EncodeProducts writes one record per product.
func EncodeProducts(w io.Writer, products []domain.Product) error {
	bw := bufio.NewWriter(w)
	for _, p := range products {
		if _, err := bw.WriteString(FormatProduct(p) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseCartLine decodes `id,name,quantity,price`.
func ParseCartLine(line string) (domain.CartSnapshotLine, error) {
	fields := split(line)
	if len(fields) < cartLineMinFields {
		return domain.CartSnapshotLine{}, malformed(line, fmt.Sprintf("expected %d fields, got %d", cartLineMinFields, len(fields)))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil || id < 1 {
		return domain.CartSnapshotLine{}, malformed(line, "id is not a positive integer")
	}
	qty, err := strconv.Atoi(fields[2])
	if err != nil || qty < 1 {
		return domain.CartSnapshotLine{}, malformed(line, "quantity is not a positive integer")
	}
	price, err := decimal.NewFromString(fields[3])
	if err != nil {
		return domain.CartSnapshotLine{}, malformed(line, "price is not a decimal")
	}
	return domain.CartSnapshotLine{
		ProductID: id,
		Name:      fields[1],
		Quantity:  qty,
		Price:     price,
	}, nil
}

// FormatCartLine is the inverse of ParseCartLine.
func FormatCartLine(l domain.CartSnapshotLine) string {
	return strings.Join([]string{
		strconv.Itoa(l.ProductID),
		l.Name,
		strconv.Itoa(l.Quantity),
		l.Price.String(),
	}, Delimiter)
}

// DecodeCartLines follows the same skip policy as DecodeProducts.
func DecodeCartLines(r io.Reader) ([]domain.CartSnapshotLine, error) {
	var (
		lines   []domain.CartSnapshotLine
		skipped error
	)
	err := scan(r, func(n int, line string) {
		l, err := ParseCartLine(line)
		if err != nil {
			skipped = multierr.Append(skipped, atLine(err, n))
			return
		}
		lines = append(lines, l)
	})
	if err != nil {
		return lines, err
	}
	return lines, skipped
}

// EncodeCartLines writes one record per snapshot line.
func EncodeCartLines(w io.Writer, lines []domain.CartSnapshotLine) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(FormatCartLine(l) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func scan(r io.Reader, fn func(n int, line string)) error {
	s := bufio.NewScanner(r)
	n := 0
	for s.Scan() {
		n++
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		fn(n, line)
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("read records: %w", err)
	}
	return nil
}

func split(line string) []string {
	fields := strings.Split(line, Delimiter)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func malformed(line, reason string) error {
	return &domain.ParseError{Record: line, Reason: reason}
}

func atLine(err error, n int) error {
	if pe, ok := err.(*domain.ParseError); ok {
		pe.Line = n
	}
	return err
}
