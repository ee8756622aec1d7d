package aggregate

import "errors"

var (
	// ErrNoData matches EmptyLedger and DivideByZero: there is nothing to report.
	ErrNoData = errors.New("no data to report")
	// ErrOverflow matches a sum that no longer fits in cents.
	ErrOverflow = errors.New("amount out of range")
)

type ArithmeticKind int

const (
	EmptyLedger ArithmeticKind = iota + 1
	DivideByZero
	Overflow
)

func (k ArithmeticKind) String() string {
	switch k {
	case EmptyLedger:
		return "empty_ledger"
	case DivideByZero:
		return "divide_by_zero"
	case Overflow:
		return "overflow"
	default:
		return "unknown"
	}
}

type ArithmeticError struct {
	Kind ArithmeticKind
}

func (e *ArithmeticError) Error() string {
	switch e.Kind {
	case EmptyLedger:
		return "no data to report: the ledger is empty"
	case DivideByZero:
		return "no data to report: total is zero"
	case Overflow:
		return "amount out of range: ledger total exceeds the supported maximum"
	default:
		return "no data to report"
	}
}

func (e *ArithmeticError) Is(target error) bool {
	if e.Kind == Overflow {
		return target == ErrOverflow
	}
	return target == ErrNoData
}
