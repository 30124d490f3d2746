package model

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		page     int
		pageSize int
		want     Pagination
	}{
		{name: "empty", total: 0, page: 1, pageSize: 10, want: Pagination{Page: 1, PageSize: 10, PageCount: 1, Total: 0}},
		{name: "exact", total: 20, page: 2, pageSize: 10, want: Pagination{Page: 2, PageSize: 10, PageCount: 2, Total: 20}},
		{name: "remainder", total: 15, page: 2, pageSize: 10, want: Pagination{Page: 2, PageSize: 10, PageCount: 2, Total: 15}},
		{name: "zero page", total: 3, page: 0, pageSize: 2, want: Pagination{Page: 1, PageSize: 2, PageCount: 2, Total: 3}},
		{name: "negative size", total: 3, page: -4, pageSize: -1, want: Pagination{Page: 1, PageSize: 1, PageCount: 3, Total: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPagination(tt.total, tt.page, tt.pageSize)
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
