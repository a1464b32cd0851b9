package templates

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/edofi/fiwe/internal/shared/biztime"
)

// DateTimeLayout is how time values appear in rendered messages.
const DateTimeLayout = "02/01/2006 15:04"

var printer = message.NewPrinter(language.French)

// FormatValue renders a template variable for display: numbers get French
// digit grouping, times are shown in the business timezone.
func FormatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case time.Time:
		return biztime.FormatInBizTimezone(value, DateTimeLayout)
	case *time.Time:
		if value == nil {
			return ""
		}
		return biztime.FormatInBizTimezone(*value, DateTimeLayout)
	case fmt.Stringer:
		return value.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return printer.Sprintf("%d", rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return printer.Sprintf("%d", rv.Uint())
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return printer.Sprintf("%d", int64(f))
		}
		return printer.Sprintf("%.2f", f)
	default:
		return fmt.Sprint(v)
	}
}
