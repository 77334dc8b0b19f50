package service

import (
	"slices"
	"testing"

	"github.com/thumbtack/onlineshop/internal/core/domain"
)

func testProduct(id int64, name string) domain.Product {
	return domain.Product{ID: id, Name: name, Price: 10, Count: 1}
}

func testCategory(id int64, name string) domain.Category {
	return domain.Category{ID: id, Name: name}
}

func productNames(rows []domain.ProductWithCategories) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Product.Name)
	}
	return out
}

func TestListByProduct(t *testing.T) {
	warcraft := testProduct(1, "warcraft")
	apple := testProduct(2, "apple")
	berretta := testProduct(3, "berretta")
	cat1 := testCategory(7, "cat1")

	snap := catalogSnapshot{
		all:           []domain.Product{warcraft, apple, berretta},
		uncategorized: []domain.Product{warcraft, berretta},
		links:         []domain.ProductCategory{{Product: apple, Category: cat1}},
	}

	rows := listByProduct(domain.AnyCategory(), snap)
	if got := productNames(rows); !slices.Equal(got, []string{"apple", "berretta", "warcraft"}) {
		t.Fatalf("unexpected order: %v", got)
	}
	if !slices.Equal(rows[0].CategoryIDs, []int64{7}) {
		t.Fatalf("apple categories: %v", rows[0].CategoryIDs)
	}
	if rows[1].CategoryIDs == nil || len(rows[1].CategoryIDs) != 0 {
		t.Fatalf("berretta must carry an empty category list, got %#v", rows[1].CategoryIDs)
	}

	rows = listByProduct(domain.InCategories([]int64{}), snap)
	if got := productNames(rows); !slices.Equal(got, []string{"berretta", "warcraft"}) {
		t.Fatalf("uncategorized filter: %v", got)
	}
}

func TestListByProduct_FilterKeepsFullCategoryList(t *testing.T) {
	pen := testProduct(1, "pen")
	a := testCategory(1, "a")
	b := testCategory(2, "b")

	snap := catalogSnapshot{links: []domain.ProductCategory{
		{Product: pen, Category: b},
		{Product: pen, Category: a},
	}}

	rows := listByProduct(domain.InCategories([]int64{1, 2, 1}), snap)
	if len(rows) != 1 {
		t.Fatalf("expected pen once, got %d rows", len(rows))
	}
	if !slices.Equal(rows[0].CategoryIDs, []int64{1, 2}) {
		t.Fatalf("expected full sorted list, got %v", rows[0].CategoryIDs)
	}
}

func byCategorySnapshot() catalogSnapshot {
	apple := testProduct(1, "apple")
	berretta := testProduct(2, "berretta")
	warcraft := testProduct(3, "warcraft")
	xen := testProduct(4, "xen")
	array := testProduct(5, "array")
	pen := testProduct(6, "pen")

	wat := testCategory(1, "wat")
	at := testCategory(2, "at")
	bat := testCategory(3, "bat")

	return catalogSnapshot{
		uncategorized: []domain.Product{pen, array},
		links: []domain.ProductCategory{
			{Product: berretta, Category: wat},
			{Product: xen, Category: at},
			{Product: apple, Category: wat},
			{Product: warcraft, Category: bat},
			{Product: berretta, Category: at},
		},
	}
}

type row struct {
	name     string
	category string
}

func categoryRows(rows []domain.ProductInCategory) []row {
	out := make([]row, 0, len(rows))
	for _, r := range rows {
		item := row{name: r.Product.Name}
		if r.Category != nil {
			item.category = r.Category.Name
		}
		out = append(out, item)
	}
	return out
}

func TestListByCategory(t *testing.T) {
	got := categoryRows(listByCategory(domain.AnyCategory(), byCategorySnapshot()))
	want := []row{
		{"array", ""},
		{"pen", ""},
		{"berretta", "at"},
		{"xen", "at"},
		{"warcraft", "bat"},
		{"apple", "wat"},
		{"berretta", "wat"},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected rows:\n got  %v\n want %v", got, want)
	}
}

func TestListByCategory_Filters(t *testing.T) {
	snap := byCategorySnapshot()

	got := categoryRows(listByCategory(domain.InCategories(nil), snap))
	if want := []row{{"array", ""}, {"pen", ""}}; !slices.Equal(got, want) {
		t.Fatalf("uncategorized only: %v", got)
	}

	// at(2) twice, bat(3) once
	got = categoryRows(listByCategory(domain.InCategories([]int64{2, 3, 2}), snap))
	want := []row{{"berretta", "at"}, {"xen", "at"}, {"warcraft", "bat"}}
	if !slices.Equal(got, want) {
		t.Fatalf("filtered rows: %v", got)
	}
}

func TestListByCategory_SameNameTieBreak(t *testing.T) {
	p1 := testProduct(1, "same")
	p2 := testProduct(2, "same")
	c := testCategory(9, "c")

	rows := listByCategory(domain.InCategories([]int64{9}), catalogSnapshot{links: []domain.ProductCategory{
		{Product: p2, Category: c},
		{Product: p1, Category: c},
	}})
	if rows[0].Product.ID != 1 || rows[1].Product.ID != 2 {
		t.Fatalf("expected id tie-break, got %d then %d", rows[0].Product.ID, rows[1].Product.ID)
	}
}
