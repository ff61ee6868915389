package pfstruct

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/models"
)

// toFloat coerces a cell value to float64. Strings must hold a plain
// decimal number; thousands separators and percent signs are rejected.
func toFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: empty cell", ErrNotNumeric)
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w: %q", ErrNotNumeric, x)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: %v (%T)", ErrNotNumeric, v, v)
}

// toOptionalFloat is toFloat for cells that may be blank; a blank cell
// yields nil.
func toOptionalFloat(v interface{}) (*float64, error) {
	if models.IsEmpty(v) {
		return nil, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
