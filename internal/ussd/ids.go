package ussd

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewRegistrationID returns prefix + base36 milliseconds + five random base36
// characters, upper-cased, e.g. KEFM0X1Y2Z3AB4C5.
func NewRegistrationID(prefix string, now time.Time) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 36))
	for range 5 {
		b.WriteByte(base36[rand.IntN(len(base36))])
	}
	return strings.ToUpper(b.String())
}
