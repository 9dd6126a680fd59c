package journal

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"trade-journal/internal/models"
)

func TestParseStatus(t *testing.T) {
	tests := map[string]models.TradeStatus{
		"":       "",
		"all":    "",
		"Active": models.StatusActive,
		"closed": models.StatusClosed,
	}
	for in, want := range tests {
		got, err := ParseStatus(in)
		if err != nil || got != want {
			t.Errorf("ParseStatus(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseStatus("pending"); err == nil {
		t.Error("expected error for unknown tab")
	}
}

func TestPaginateHugeValues(t *testing.T) {
	views := make([]models.TradeView, 5)

	p := Paginate(views, math.MaxInt, 2)
	if len(p.Items) != 0 || p.TotalPages != 3 || p.Page != math.MaxInt {
		t.Errorf("huge page = %+v", p)
	}

	p = Paginate(views, 1, math.MaxInt)
	if len(p.Items) != 5 || p.TotalPages != 1 {
		t.Errorf("huge size = %+v", p)
	}

	p = Paginate(views, 2, math.MaxInt)
	if len(p.Items) != 0 {
		t.Errorf("second page of huge size = %+v", p)
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil, 1, 10)
	if p.TotalPages != 1 || p.Total != 0 || p.Items == nil {
		t.Errorf("page = %+v", p)
	}
}

// Property: walking every page yields each view exactly once, in order.
func TestProperty_PagesPartitionViews(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("pages partition the input", prop.ForAll(
		func(n, size int) bool {
			views := make([]models.TradeView, n)
			for i := range views {
				views[i].ID = int64(i)
			}

			first := Paginate(views, 1, size)
			var seen []int64
			for page := 1; page <= first.TotalPages; page++ {
				for _, v := range Paginate(views, page, size).Items {
					seen = append(seen, v.ID)
				}
			}
			if len(seen) != n {
				return false
			}
			for i, id := range seen {
				if id != int64(i) {
					return false
				}
			}
			return len(Paginate(views, first.TotalPages+1, size).Items) == 0
		},
		gen.IntRange(0, 60),
		gen.IntRange(1, 15),
	))

	properties.TestingRun(t)
}
