// Package utils holds small parsing helpers shared by the HTTP handlers and
// services: page bounds for listings and positive database ids.
package utils

import (
	"strconv"
	"strings"
)

// Listing bounds for paginated back-office endpoints.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePage reads 1-based page and page size values. Empty or malformed
// input falls back to the defaults; results are clamped to
// [1, ∞) and [1, MaxPageSize].
func ParsePage(pageParam, sizeParam string) (page, pageSize int) {
	return ClampPage(atoiOr(pageParam, DefaultPage), atoiOr(sizeParam, DefaultPageSize))
}

// ClampPage bounds already-parsed page values.
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	return page, min(max(pageSize, 1), MaxPageSize)
}

// Offset returns the number of rows preceding page.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// ParseID parses a positive numeric id. Zero, negatives, signs and
// surrounding spaces are rejected.
func ParseID(s string) (uint, bool) {
	if s == "" || s[0] == '+' || strings.TrimSpace(s) != s {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func atoiOr(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
