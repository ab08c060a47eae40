// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

package catalog

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// fixtureCatalog loads a small catalog with users, brands, and a
// duplicate brand for accessor tests.
func fixtureCatalog(t *testing.T) *Catalog {
	t.Helper()
	csv := testCSV(
		"1,alice,Roadster,men solid shirt,Western,shirts,100,50,4.1,100,u,o",
		"2,bob,Levis,women skinny jeans,Western,jeans,200,150,4.5,950,u,o",
		"3,alice,Roadster,men printed tshirt,Western,tshirts,300,250,3.8,40,u,o",
		"4,,HRX,running shoes,Sports,shoes,500,400,4.6,2000,u,o",
	)
	cat, err := Load(strings.NewReader(csv), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return cat
}

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain integer", "16253814", "16253814", false},
		{"float formatted", "16253814.0", "16253814", false},
		{"leading zeros", "007", "7", false},
		{"leading zeros float", "007.0", "7", false},
		{"whitespace", " 42 ", "42", false},
		{"fractional", "42.5", "", true},
		{"alpha", "SKU-42", "", true},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalID(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidIdentifier) {
					t.Fatalf("CanonicalID(%q) error = %v, want ErrInvalidIdentifier", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CanonicalID(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("CanonicalID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCatalog_GetUnknown(t *testing.T) {
	cat := fixtureCatalog(t)
	_, err := cat.Get("9999")
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrProductNotFound", err)
	}
}

func TestCatalog_Users(t *testing.T) {
	cat := fixtureCatalog(t)
	got := cat.Users()
	want := []string{"alice", "bob"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Users() = %v, want %v (first-seen order, empty skipped)", got, want)
	}
}

func TestCatalog_PurchasesByUser(t *testing.T) {
	cat := fixtureCatalog(t)

	purchases, err := cat.PurchasesByUser("alice")
	if err != nil {
		t.Fatalf("PurchasesByUser() error = %v", err)
	}
	if len(purchases) != 2 {
		t.Fatalf("len = %d, want 2", len(purchases))
	}
	if purchases[0].ID != "1" || purchases[1].ID != "3" {
		t.Errorf("purchases out of upload order: %v, %v", purchases[0].ID, purchases[1].ID)
	}

	_, err = cat.PurchasesByUser("mallory")
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("unknown user error = %v, want ErrNoMatch", err)
	}
}

func TestCatalog_Brands(t *testing.T) {
	cat := fixtureCatalog(t)
	got := cat.Brands()
	want := []string{"Roadster", "Levis", "HRX"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Brands() = %v, want %v", got, want)
	}
}

func TestCatalog_Preview(t *testing.T) {
	cat := fixtureCatalog(t)

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"subset", 2, 2},
		{"exact", 4, 4},
		{"beyond length", 10, 4},
		{"zero", 0, 0},
		{"negative", -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(cat.Preview(tt.n)); got != tt.want {
				t.Errorf("len(Preview(%d)) = %d, want %d", tt.n, got, tt.want)
			}
		})
	}

	// Preview returns a copy; mutating it must not touch the catalog.
	p := cat.Preview(1)
	p[0].Brand = "mutated"
	if cat.At(0).Brand == "mutated" {
		t.Error("Preview() should copy rows, not alias the catalog")
	}
}
