package format

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestYearMonth(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2021-01", "Jan 2021"},
		{"2019-12-31", "Dec 2019"},
		{"2023-06-01T00:00:00Z", "Jun 2023"},
		{"2023-06-01T10:11:12.345+02:00", "Jun 2023"},
		{"2020/09", "Sep 2020"},
		{"2021-1", "Jan 2021"},
		{"2021/7", "Jul 2021"},
		{"Mar 2022", "Mar 2022"},
		{"September 2018", "Sep 2018"},
		{" 2022-03 ", "Mar 2022"},
		{"", ""},
		{"   ", ""},
		{"Present", ""},
		{"2021-13", ""},
		{"not a date", ""},
	}
	for _, tc := range cases {
		if got := YearMonth(tc.in); got != tc.want {
			t.Errorf("YearMonth(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestYearMonthAllMonthsStable(t *testing.T) {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	for _, year := range []int{1999, 2000, 2024} {
		for i, name := range months {
			in := fmt.Sprintf("%04d-%02d", year, i+1)
			want := fmt.Sprintf("%s %d", name, year)
			got := YearMonth(in)
			if got != want {
				t.Fatalf("YearMonth(%q) = %q, want %q", in, got, want)
			}
			if again := YearMonth(in); again != got {
				t.Fatalf("YearMonth(%q) not stable: %q then %q", in, got, again)
			}
			if twice := YearMonth(got); twice != got {
				t.Fatalf("YearMonth(%q) = %q, want its own output back", got, twice)
			}
		}
	}
}

func TestRange(t *testing.T) {
	cases := []struct {
		start, end string
		want       string
	}{
		{"2020-01", "2022-03", "Jan 2020 – Mar 2022"},
		{"2020-01", "", "Jan 2020"},
		{"", "2022-03", "Mar 2022"},
		{"bogus", "", ""},
		{"", "", ""},
	}
	for _, tc := range cases {
		if got := Range(tc.start, tc.end); got != tc.want {
			t.Errorf("Range(%q, %q) = %q, want %q", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestBullets(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Built X\n\nShipped Y", []string{"Built X", "Shipped Y"}},
		{"one\r\ntwo\r\n", []string{"one", "two"}},
		{"  padded  ", []string{"padded"}},
		{"", nil},
		{"\n\n  \n", nil},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, Bullets(tc.in)); diff != "" {
			t.Errorf("Bullets(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestJoinTags(t *testing.T) {
	if got := JoinTags([]string{"Go", "", " React ", "SQL"}); got != "Go, React, SQL" {
		t.Fatalf("unexpected tags: %q", got)
	}
	if got := JoinTags(nil); got != "" {
		t.Fatalf("expected empty tags, got %q", got)
	}
}

func TestLinkHelpers(t *testing.T) {
	if got := DisplayURL("https://ada.dev/"); got != "ada.dev" {
		t.Fatalf("DisplayURL: %q", got)
	}
	if got := DisplayURL("ada.dev/blog"); got != "ada.dev/blog" {
		t.Fatalf("DisplayURL without scheme: %q", got)
	}
	if got := ProfileHandle("https://www.linkedin.com/in/ada-lovelace/"); got != "ada-lovelace" {
		t.Fatalf("ProfileHandle: %q", got)
	}
	if got := ProfileHandle("github.com/ada"); got != "ada" {
		t.Fatalf("ProfileHandle without scheme: %q", got)
	}
	if got := ProfileHandle(""); got != "" {
		t.Fatalf("ProfileHandle empty: %q", got)
	}
}
