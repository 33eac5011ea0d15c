package api

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaginator_Parse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	pager := Paginator{PageSize: 10, MaxPageSize: 100}

	testCases := []struct {
		name           string
		query          string
		expectedLimit  int
		expectedOffset int
		expectedPage   int
	}{
		{name: "Defaults", query: "", expectedLimit: 10, expectedOffset: 0, expectedPage: 1},
		{name: "Second page", query: "page=2", expectedLimit: 10, expectedOffset: 10, expectedPage: 2},
		{name: "Custom page size", query: "page=3&page_size=25", expectedLimit: 25, expectedOffset: 50, expectedPage: 3},
		{name: "Page size clamped", query: "page_size=500", expectedLimit: 100, expectedOffset: 0, expectedPage: 1},
		{name: "Invalid page ignored", query: "page=abc", expectedLimit: 10, expectedOffset: 0, expectedPage: 1},
		{name: "Negative page ignored", query: "page=-2", expectedLimit: 10, expectedOffset: 0, expectedPage: 1},
		{name: "Zero page size ignored", query: "page_size=0", expectedLimit: 10, expectedOffset: 0, expectedPage: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/flights?"+tc.query, nil)

			page, pageNum := pager.Parse(c)

			assert.Equal(t, tc.expectedLimit, page.Limit)
			assert.Equal(t, tc.expectedOffset, page.Offset)
			assert.Equal(t, tc.expectedPage, pageNum)
		})
	}
}

func TestPaged(t *testing.T) {
	resp := paged(25, 1, 10, []int{})
	assert.Equal(t, int64(25), resp.Count)
	assert.Nil(t, resp.Previous)
	if assert.NotNil(t, resp.Next) {
		assert.Equal(t, 2, *resp.Next)
	}

	resp = paged(25, 2, 10, []int{})
	if assert.NotNil(t, resp.Previous) {
		assert.Equal(t, 1, *resp.Previous)
	}
	if assert.NotNil(t, resp.Next) {
		assert.Equal(t, 3, *resp.Next)
	}

	resp = paged(25, 3, 10, []int{})
	assert.Nil(t, resp.Next)
	if assert.NotNil(t, resp.Previous) {
		assert.Equal(t, 2, *resp.Previous)
	}

	// A single short page has neither link.
	resp = paged(4, 1, 10, []int{})
	assert.Nil(t, resp.Next)
	assert.Nil(t, resp.Previous)
}
