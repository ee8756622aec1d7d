package core

import (
	"errors"
	"testing"
)

func TestNewSaleComputesTotal(t *testing.T) {
	cases := []struct {
		qty, price string
		total      int64
	}{
		{"1", "100", 10000},
		{"3", "19.99", 5997},
		{"2", "0,5", 100},
		{"7", "0", 0},
		{" 4 ", "12.345", 4940}, // price rounds to 12.35 before multiplying
	}
	for _, tc := range cases {
		s, err := NewSale("01/02/2025", "Ana", "Mouse", tc.qty, tc.price, "Sul")
		if err != nil {
			t.Fatalf("qty=%q price=%q: unexpected error %v", tc.qty, tc.price, err)
		}
		if s.Total.Cents != tc.total {
			t.Fatalf("qty=%q price=%q: expected total %d, got %d", tc.qty, tc.price, tc.total, s.Total.Cents)
		}
		if s.Total != s.UnitPrice.Mul(s.Quantity) {
			t.Fatalf("total %v != %v * %d", s.Total, s.UnitPrice, s.Quantity)
		}
	}
}

func TestNewSaleKeepsFieldsAsEntered(t *testing.T) {
	s, err := NewSale("31/12/2024", "Bruno", "Notebook", "2", "3500", "Nordeste")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Date != "31/12/2024" || s.Seller != "Bruno" || s.Product != "Notebook" || s.Region != "Nordeste" {
		t.Fatalf("unexpected sale: %+v", s)
	}
	if s.Quantity != 2 || s.UnitPrice.Cents != 350000 || s.Total.Cents != 700000 {
		t.Fatalf("unexpected amounts: %+v", s)
	}
}

func TestBuildSaleRejects(t *testing.T) {
	valid := SaleInput{Seller: "Ana", Product: "Mouse", Quantity: "1", Price: "10", Region: "Sul"}
	with := func(mut func(*SaleInput)) SaleInput {
		in := valid
		mut(&in)
		return in
	}
	cases := []struct {
		name    string
		in      SaleInput
		kind    ValidationKind
		numeric bool
	}{
		{"blank seller", with(func(in *SaleInput) { in.Seller = "" }), EmptySeller, false},
		{"whitespace seller", with(func(in *SaleInput) { in.Seller = "   " }), EmptySeller, false},
		{"blank product", with(func(in *SaleInput) { in.Product = "" }), EmptyProduct, false},
		{"blank region", with(func(in *SaleInput) { in.Region = "" }), EmptyRegion, false},
		{"seller checked first", SaleInput{Quantity: "x", Price: "y"}, EmptySeller, false},
		{"text quantity", with(func(in *SaleInput) { in.Quantity = "abc" }), NumericParseError, true},
		{"zero quantity", with(func(in *SaleInput) { in.Quantity = "0" }), NumericParseError, true},
		{"fractional quantity", with(func(in *SaleInput) { in.Quantity = "1.5" }), NumericParseError, true},
		{"text price", with(func(in *SaleInput) { in.Price = "dez" }), NumericParseError, true},
		{"negative price", with(func(in *SaleInput) { in.Price = "-10" }), NumericParseError, true},
		{"empty price", with(func(in *SaleInput) { in.Price = "" }), NumericParseError, true},
		{"total out of range", with(func(in *SaleInput) { in.Quantity = "2"; in.Price = "92233720368547758.07" }), NumericParseError, true},
		{"total just out of range", with(func(in *SaleInput) { in.Quantity = "3"; in.Price = "30744573456182586.03" }), NumericParseError, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildSale(tc.in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Kind != tc.kind {
				t.Fatalf("expected kind %v, got %v", tc.kind, verr.Kind)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected errors.Is(err, ErrValidation)")
			}
			if errors.Is(err, ErrNumericParse) != tc.numeric {
				t.Fatalf("errors.Is(err, ErrNumericParse) = %v", !tc.numeric)
			}
		})
	}
}

func TestValidationKindString(t *testing.T) {
	if EmptyRegion.String() != "empty_region" || NumericParseError.String() != "numeric_parse_error" {
		t.Fatalf("unexpected kind names")
	}
}

func TestBuildSaleLargestTotal(t *testing.T) {
	s, err := NewSale("", "Ana", "Lote", "1", "92233720368547758.07", "Sul")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Total.Cents != 1<<63-1 {
		t.Fatalf("unexpected total %d", s.Total.Cents)
	}

	_, err = NewSale("", "Ana", "Lote", "2", "92233720368547758.07", "Sul")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "total" {
		t.Fatalf("expected total validation error, got %v", err)
	}
	if verr.Error() != "total of 2 x 92233720368547758.07 is too large" {
		t.Fatalf("unexpected message %q", verr.Error())
	}
}
