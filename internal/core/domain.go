package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type (
	// Sale is one completed transaction. Total is always derived from
	// Quantity and UnitPrice.
	Sale struct {
		Date      string // as entered, never parsed
		Seller    string
		Product   string
		Quantity  int
		UnitPrice Money
		Total     Money
		Region    string
	}

	// SaleInput carries the raw form values a collaborator collected.
	SaleInput struct {
		Date     string
		Seller   string `validate:"notblank"`
		Product  string `validate:"notblank"`
		Quantity string
		Price    string
		Region   string `validate:"notblank"`
	}

	ValidationKind int

	// ValidationError reports why a candidate sale was rejected.
	ValidationError struct {
		Kind  ValidationKind
		Field string
		Value string
	}
)

const (
	EmptySeller ValidationKind = iota + 1
	EmptyProduct
	EmptyRegion
	NumericParseError
)

var (
	ErrValidation      = errors.New("invalid sale")
	ErrNumericParse    = errors.New("invalid number")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

var validate = newValidator()

var fieldKinds = map[string]ValidationKind{
	"Seller":  EmptySeller,
	"Product": EmptyProduct,
	"Region":  EmptyRegion,
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

func (k ValidationKind) String() string {
	switch k {
	case EmptySeller:
		return "empty_seller"
	case EmptyProduct:
		return "empty_product"
	case EmptyRegion:
		return "empty_region"
	case NumericParseError:
		return "numeric_parse_error"
	default:
		return "unknown"
	}
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case EmptySeller:
		return "seller is required"
	case EmptyProduct:
		return "product is required"
	case EmptyRegion:
		return "region is required"
	case NumericParseError:
		if e.Field == "total" {
			return fmt.Sprintf("total of %s is too large", e.Value)
		}
		return fmt.Sprintf("%s must be a valid number, got %q", e.Field, e.Value)
	default:
		return "invalid sale"
	}
}

// Is lets callers match on ErrValidation for every kind and on
// ErrNumericParse for numeric failures.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return true
	case ErrNumericParse:
		return e.Kind == NumericParseError
	}
	return false
}

// NewSale validates the raw values and builds a Sale with its total computed.
func NewSale(date, seller, product, quantityText, priceText, region string) (Sale, error) {
	return BuildSale(SaleInput{
		Date:     date,
		Seller:   seller,
		Product:  product,
		Quantity: quantityText,
		Price:    priceText,
		Region:   region,
	})
}

// BuildSale is NewSale over a SaleInput. Required text fields are checked in
// seller, product, region order before any number is parsed.
func BuildSale(in SaleInput) (Sale, error) {
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return Sale{}, &ValidationError{Kind: fieldKinds[fieldErrs[0].Field()], Field: strings.ToLower(fieldErrs[0].Field())}
		}
		return Sale{}, err
	}

	qty, err := ParseQuantity(in.Quantity)
	if err != nil {
		return Sale{}, &ValidationError{Kind: NumericParseError, Field: "quantity", Value: in.Quantity}
	}
	price, err := ParseMoney(in.Price)
	if err != nil {
		return Sale{}, &ValidationError{Kind: NumericParseError, Field: "price", Value: in.Price}
	}
	total, err := price.MulChecked(qty)
	if err != nil {
		return Sale{}, &ValidationError{Kind: NumericParseError, Field: "total", Value: in.Quantity + " x " + in.Price}
	}

	return Sale{
		Date:      in.Date,
		Seller:    in.Seller,
		Product:   in.Product,
		Quantity:  qty,
		UnitPrice: price,
		Total:     total,
		Region:    in.Region,
	}, nil
}

// ParseQuantity parses a positive integer unit count.
func ParseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, ErrInvalidQuantity
	}
	return n, nil
}
