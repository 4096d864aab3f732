package catalog

import "testing"

func intPtr(v int) *int { return &v }

func TestAgeGroupBoundaries(t *testing.T) {
	cases := []struct {
		age  *int
		want string
	}{
		{intPtr(0), AgeUnder25},
		{intPtr(24), AgeUnder25},
		{intPtr(25), Age25To40},
		{intPtr(40), Age25To40},
		{intPtr(41), AgeOver40},
		{intPtr(90), AgeOver40},
		{nil, AgeUnknown},
	}
	for _, c := range cases {
		if got := AgeGroup(c.age); got != c.want {
			t.Errorf("AgeGroup(%v) = %q, want %q", c.age, got, c.want)
		}
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"5-10", 7.5, true},
		{"6-10", 8, true},
		{"16-30 Min", 23, true},
		{"8", 8, true},
		{" 12 ", 12, true},
		{"30+ min", 30, true},
		{"unknown", 0, false},
		{"", 0, false},
		{"about 5", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseDuration(c.in)
		if ok != c.valid || got != c.want {
			t.Errorf("ParseDuration(%q) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.valid)
		}
	}
}

func TestTimeOfDayBoundaries(t *testing.T) {
	cases := map[int]string{
		0:  Night,
		5:  Night,
		6:  Day,
		12: Day,
		19: Day,
		20: Night,
		23: Night,
	}
	for hour, want := range cases {
		if got := TimeOfDay(hour); got != want {
			t.Errorf("TimeOfDay(%d) = %q, want %q", hour, got, want)
		}
	}
}

func TestRate(t *testing.T) {
	if got := Rate(1, 3); got != 33.33 {
		t.Errorf("Rate(1,3) = %v", got)
	}
	if got := Rate(2, 3); got != 66.67 {
		t.Errorf("Rate(2,3) = %v", got)
	}
	if got := Rate(0, 0); got != 0 {
		t.Errorf("Rate(0,0) = %v", got)
	}
	if got := Rate(5, 5); got != 100 {
		t.Errorf("Rate(5,5) = %v", got)
	}
}
