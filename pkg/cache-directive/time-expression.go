package cachedirective

import (
	"math"
	"regexp"
	"strconv"

	"github.com/rs/zerolog/log"
)

type timeUnit struct {
	name    string
	pattern *regexp.Regexp
	seconds int64
}

// timeUnits are tried in order, the first match wins.
// A month is 30 days and a year is 365.2422 days, rounded to the second;
// generated values depend on these exact ratios.
var timeUnits = []timeUnit{
	{"seconds", regexp.MustCompile(`(?i)^(\d+)\s*(s|sec|seconds?)$`), 1},
	{"minutes", regexp.MustCompile(`(?i)^(\d+)\s*(min|minutes?)$`), 60},
	{"hours", regexp.MustCompile(`(?i)^(\d+)\s*(h|hours?)$`), 3600},
	{"days", regexp.MustCompile(`(?i)^(\d+)\s*(d|days?)$`), 86400},
	{"weeks", regexp.MustCompile(`(?i)^(\d+)\s*(w|wk|weeks?)$`), 604800},
	{"months", regexp.MustCompile(`(?i)^(\d+)\s*(months?)$`), 30 * 86400},
	{"years", regexp.MustCompile(`(?i)^(\d+)\s*(y|years?)$`), 31556926},
}

// ParseTimeExpression converts an expression such as "300s", "5 min",
// "1 hour" or "2 weeks" to a number of seconds.
// The boolean is false if the expression is not recognized or overflows.
func ParseTimeExpression(expr string) (int64, bool) {
	for _, unit := range timeUnits {
		m := unit.pattern.FindStringSubmatch(expr)
		if m == nil {
			continue
		}
		count, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || count > math.MaxInt64/unit.seconds {
			return 0, false
		}
		if unit.name == "months" {
			log.Trace().Int64("months", count).Int64("days", count*30).Msg("Treating months as 30 days")
		}
		return count * unit.seconds, true
	}
	return 0, false
}
