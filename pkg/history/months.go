package history

import (
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/sproutlab/sprout/pkg/growth"
)

// MonthsBetween counts the whole calendar months from birth to date. A month
// is complete once date reaches the birth day-of-month, or the last day of the
// month when that month is shorter.
func MonthsBetween(birth, date time.Time) (int, error) {
	by, bm, bd := birth.Date()
	dy, dm, dd := date.Date()

	if dy < by || (dy == by && (dm < bm || (dm == bm && dd < bd))) {
		return 0, pkgerrors.Wrapf(growth.ErrNegativeAge, "%s is before birth date %s",
			date.Format(time.DateOnly), birth.Format(time.DateOnly))
	}

	months := (dy-by)*12 + int(dm-bm)

	anniversary := bd
	if last := daysIn(dy, dm); anniversary > last {
		anniversary = last
	}
	if dd < anniversary {
		months--
	}

	return months, nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
