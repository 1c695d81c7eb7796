package region

import "testing"

func TestFromPointsNormalizes(t *testing.T) {
	cases := []struct {
		name           string
		x1, y1, x2, y2 int
		want           Region
	}{
		{name: "left-to-right", x1: 10, y1: 20, x2: 110, y2: 220, want: Region{10, 20, 110, 220}},
		{name: "right-to-left", x1: 110, y1: 220, x2: 10, y2: 20, want: Region{10, 20, 110, 220}},
		{name: "bottom-left drag", x1: 10, y1: 220, x2: 110, y2: 20, want: Region{10, 20, 110, 220}},
		{name: "top-right drag", x1: 110, y1: 20, x2: 10, y2: 220, want: Region{10, 20, 110, 220}},
		{name: "single point", x1: 5, y1: 5, x2: 5, y2: 5, want: Region{5, 5, 5, 5}},
		{name: "negative coords", x1: -30, y1: 40, x2: -100, y2: 10, want: Region{-100, 10, -30, 40}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromPoints(tc.x1, tc.y1, tc.x2, tc.y2)
			if got != tc.want {
				t.Errorf("FromPoints(%d,%d,%d,%d) = %v, want %v", tc.x1, tc.y1, tc.x2, tc.y2, got, tc.want)
			}
			if got.X1 > got.X2 || got.Y1 > got.Y2 {
				t.Errorf("region %v not normalized", got)
			}
		})
	}
}

func TestStringParseRoundTrip(t *testing.T) {
	in := Region{X1: 100, Y1: 200, X2: 740, Y2: 560}
	s := in.String()
	if s != "100,200,740,560" {
		t.Fatalf("String() = %q", s)
	}
	out, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", s, err)
	}
	if out != in {
		t.Errorf("round trip %v -> %q -> %v", in, s, out)
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    Region
		wantErr bool
	}{
		{name: "plain", in: "1,2,3,4", want: Region{1, 2, 3, 4}},
		{name: "spaces", in: "1, 2, 3, 4", want: Region{1, 2, 3, 4}},
		{name: "unordered normalized", in: "3,4,1,2", want: Region{1, 2, 3, 4}},
		{name: "too few", in: "1,2,3", wantErr: true},
		{name: "too many", in: "1,2,3,4,5", wantErr: true},
		{name: "not a number", in: "1,2,x,4", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	if !(Region{}).Empty() {
		t.Error("zero region should be empty")
	}
	if !(Region{X1: 5, Y1: 5, X2: 5, Y2: 10}).Empty() {
		t.Error("zero-width region should be empty")
	}
	if (Region{X1: 0, Y1: 0, X2: 1, Y2: 1}).Empty() {
		t.Error("1x1 region should not be empty")
	}
}

func TestRect(t *testing.T) {
	r := Region{X1: 10, Y1: 20, X2: 30, Y2: 40}
	rect := r.Rect()
	if rect.Min.X != 10 || rect.Min.Y != 20 || rect.Max.X != 30 || rect.Max.Y != 40 {
		t.Errorf("Rect() = %v", rect)
	}
	if rect.Dx() != r.Width() || rect.Dy() != r.Height() {
		t.Errorf("Rect() size %dx%d, want %dx%d", rect.Dx(), rect.Dy(), r.Width(), r.Height())
	}
}
