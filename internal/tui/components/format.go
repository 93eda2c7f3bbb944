package components

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// moneyKeys are fields rendered as currency.
var moneyKeys = map[string]bool{
	"price":   true,
	"total":   true,
	"balance": true,
	"deposit": true,
}

// FormatValue renders a record field for display. Money fields get a
// currency sign and grouping, integers get thousands separators and times
// are shown relative to now.
func FormatValue(key string, v any) string {
	if moneyKeys[strings.ToLower(key)] {
		if f, ok := toFloat(v); ok {
			return FormatMoney(f)
		}
	}
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		return x
	case bool:
		if x {
			return "yes"
		}
		return "no"
	case time.Time:
		return humanize.Time(x)
	case int:
		return humanize.Comma(int64(x))
	case int64:
		return humanize.Comma(x)
	case int32:
		return humanize.Comma(int64(x))
	case uint:
		return humanize.Comma(int64(x))
	case uint64:
		if x > math.MaxInt64 {
			return fmt.Sprint(x)
		}
		return humanize.Comma(int64(x))
	case float32:
		return formatFloat(float64(x))
	case float64:
		return formatFloat(x)
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return humanize.Comma(n)
		}
		return x.String()
	case []any, map[string]any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}

// FormatMoney renders f with a dollar sign, grouping and two decimals.
func FormatMoney(f float64) string {
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", f)
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return humanize.Comma(int64(f))
	}
	return humanize.CommafWithDigits(f, 2)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
