package fields

import (
	"testing"
	"time"
)

func intPtr(v int) *int {
	return &v
}

func TestParseIssueNumber(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"Issue 42", intPtr(42)},
		{"Issue", nil},
		{"", nil},
		{"Issue forty-two", nil},
		{"Issue 7, Spring", intPtr(7)},
		{"  Issue   108  ", intPtr(108)},
		{"Issue #3", nil},
		{"No. 12 Summer", intPtr(12)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseIssueNumber(tt.in)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("ParseIssueNumber(%q) = %d, want nil", tt.in, *got)
			case tt.want != nil && got == nil:
				t.Errorf("ParseIssueNumber(%q) = nil, want %d", tt.in, *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("ParseIssueNumber(%q) = %d, want %d", tt.in, *got, *tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in    string
		year  int
		month time.Month
		ok    bool
	}{
		{"March 2024", 2024, time.March, true},
		{"MARCH 2024", 2024, time.March, true},
		{"Sept. 2019", 2019, time.September, true},
		{"Newsletter | December 1999", 1999, time.December, true},
		{"Issue 2024", 0, 0, false},
		{"2024", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseDate(tt.in)
			if !tt.ok {
				if got != nil {
					t.Errorf("ParseDate(%q) = %v, want nil", tt.in, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseDate(%q) = nil", tt.in)
			}
			want := time.Date(tt.year, tt.month, 1, 0, 0, 0, 0, time.UTC)
			if !got.Equal(want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, want)
			}
		})
	}
}

func TestSlugDeterministic(t *testing.T) {
	a := Slug(2024, 2, intPtr(42))
	b := Slug(2024, 2, intPtr(42))
	if a != b {
		t.Fatalf("Slug not deterministic: %q vs %q", a, b)
	}
	if a != "2024-03-issue-42" {
		t.Errorf("Slug() = %q, want %q", a, "2024-03-issue-42")
	}
	if c := Slug(2024, 2, intPtr(43)); c == a {
		t.Errorf("different issue numbers produced the same slug %q", c)
	}
	if d := Slug(2024, 2, nil); d != "2024-03" {
		t.Errorf("Slug() without issue = %q", d)
	}
}

func TestSlugFor(t *testing.T) {
	date := time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		date   *time.Time
		issue  *int
		source string
		want   string
	}{
		{"date and issue", &date, intPtr(5), "in/x.pdf", "2023-11-issue-5"},
		{"date only", &date, nil, "in/x.pdf", "2023-11"},
		{"issue only", nil, intPtr(5), "in/x.pdf", "undated-issue-5"},
		{"neither", nil, nil, "/data/in/Spring Edition (final).PDF", "spring-edition-final"},
		{"nothing usable", nil, nil, "in/___.pdf", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlugFor(tt.date, tt.issue, tt.source); got != tt.want {
				t.Errorf("SlugFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"--a--b--", "a-b"},
		{"", "untitled"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
