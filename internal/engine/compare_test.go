package engine

import (
	"errors"
	"testing"
)

func TestCompare_Normalization(t *testing.T) {
	a := barsFromCloses("AAA", []float64{100, 110, 121})
	b := barsFromCloses("BBB", []float64{50, 45, 40})

	cmp, err := Compare("AAA", a, "BBB", b, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmp.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(cmp.Rows))
	}

	wantA := []float64{100, 110, 121}
	wantB := []float64{100, 90, 80}
	for i, row := range cmp.Rows {
		if row.Normalized[0] != wantA[i] {
			t.Errorf("row %d: expected %s normalized %.1f, got %f", i, "AAA", wantA[i], row.Normalized[0])
		}
		if row.Normalized[1] != wantB[i] {
			t.Errorf("row %d: expected %s normalized %.1f, got %f", i, "BBB", wantB[i], row.Normalized[1])
		}
	}
}

func TestCompare_StartsAtHundred(t *testing.T) {
	// Wildly different price scales must both rebase to exactly 100.
	a := barsFromCloses("AAA", []float64{0.0042, 0.0040, 0.0051})
	b := barsFromCloses("BBB", []float64{87000, 91000, 86000})

	cmp, err := Compare("AAA", a, "BBB", b, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := cmp.Rows[0]
	if first.Normalized[0] != 100.0 || first.Normalized[1] != 100.0 {
		t.Errorf("expected both series to start at exactly 100, got %f and %f",
			first.Normalized[0], first.Normalized[1])
	}
}

func TestCompare_DateIntersection(t *testing.T) {
	// Series B is missing the middle trading day (a market holiday); the
	// output must only contain dates present in both series.
	a := barsFromCloses("AAA", []float64{10, 20, 30})
	b := barsFromCloses("BBB", []float64{5, 15, 25})
	b = append(b[:1], b[2:]...)

	cmp, err := Compare("AAA", a, "BBB", b, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmp.Rows) != 2 {
		t.Fatalf("expected 2 aligned rows, got %d", len(cmp.Rows))
	}
	wantDates := []string{
		a[0].DateString(),
		a[2].DateString(),
	}
	for i, row := range cmp.Rows {
		if row.Date != wantDates[i] {
			t.Errorf("row %d: expected date %s, got %s", i, wantDates[i], row.Date)
		}
	}
	// Bases come from the first aligned date, not the first raw record.
	if cmp.Rows[0].Normalized[0] != 100 || cmp.Rows[0].Normalized[1] != 100 {
		t.Errorf("expected rebase at first aligned date, got %f and %f",
			cmp.Rows[0].Normalized[0], cmp.Rows[0].Normalized[1])
	}
}

func TestCompare_RestrictsToLastDays(t *testing.T) {
	a := barsFromCloses("AAA", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	b := barsFromCloses("BBB", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	cmp, err := Compare("AAA", a, "BBB", b, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmp.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(cmp.Rows))
	}
	if cmp.Rows[0].Date != a[6].DateString() {
		t.Errorf("expected window to start at %s, got %s", a[6].DateString(), cmp.Rows[0].Date)
	}
	if cmp.Rows[0].Normalized[0] != 100 {
		t.Errorf("expected rebase inside the restricted window, got %f", cmp.Rows[0].Normalized[0])
	}
}

func TestCompare_Errors(t *testing.T) {
	a := barsFromCloses("AAA", []float64{10, 20})
	b := barsFromCloses("BBB", []float64{10, 20})

	if _, err := Compare("AAA", a, "AAA", a, 30); !errors.Is(err, ErrSameSymbol) {
		t.Errorf("same symbol: expected ErrSameSymbol, got %v", err)
	}
	if _, err := Compare("AAA", a, "BBB", b, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero days: expected ErrInvalidInput, got %v", err)
	}
	if _, err := Compare("AAA", a, "BBB", nil, 30); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("empty series: expected ErrInsufficientData, got %v", err)
	}

	// Disjoint date ranges: no aligned rows.
	c := barsFromCloses("CCC", []float64{10, 20})
	for i := range c {
		c[i].Date = c[i].Date.AddDate(1, 0, 0)
	}
	if _, err := Compare("AAA", a, "CCC", c, 30); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("disjoint dates: expected ErrInsufficientData, got %v", err)
	}
}
