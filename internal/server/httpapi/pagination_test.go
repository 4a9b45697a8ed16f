package httpapi

import (
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "/api/news", 1, 10, 0},
		{"explicit", "/api/news?page=3&limit=5", 3, 5, 10},
		{"zero page", "/api/news?page=0", 1, 10, 0},
		{"negative limit", "/api/news?limit=-2", 1, 10, 0},
		{"garbage", "/api/news?page=abc&limit=xyz", 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePagination(httptest.NewRequest("GET", tt.url, nil))
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit || got.Offset != tt.wantOffset {
				t.Fatalf("got %+v, want page=%d limit=%d offset=%d",
					got, tt.wantPage, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}

	for _, tt := range tests {
		if got := totalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}
