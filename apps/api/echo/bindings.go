package echoapi

import (
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harmonyhs/harmony/core"
	"github.com/harmonyhs/harmony/core/schedule"
	"github.com/harmonyhs/harmony/core/user"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

func todayKey() string {
	return schedule.FormatDateKey(time.Now().UTC())
}

func parseDateParam(s string) (time.Time, error) {
	return schedule.ParseDateKey(s)
}

// applyUserOrdering sorts users by the first recognized ordering field.
func applyUserOrdering(users []user.User, orderings []core.DBOrdering) {
	for _, ord := range orderings {
		var less func(a, b user.User) bool
		switch ord.Field {
		case "name":
			less = func(a, b user.User) bool { return a.Name < b.Name }
		case "username":
			less = func(a, b user.User) bool { return a.Username < b.Username }
		case "email":
			less = func(a, b user.User) bool { return a.Email < b.Email }
		case "created_at":
			less = func(a, b user.User) bool { return a.CreatedAt.Before(b.CreatedAt) }
		default:
			continue
		}
		sort.SliceStable(users, func(i, j int) bool {
			if ord.Ascending {
				return less(users[i], users[j])
			}
			return less(users[j], users[i])
		})
		return
	}
}
