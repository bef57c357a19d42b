package domain

import "testing"

func TestPDFFileName(t *testing.T) {
	tests := []struct {
		childName string
		theme     string
		want      string
	}{
		{"Alex", "Space Dinosaurs", "alex_space_dinosaurs_coloring_book.pdf"},
		{"Mary Jane", "Magical Forest Animals", "mary_jane_magical_forest_animals_coloring_book.pdf"},
		{"Bo", "Cats/Dogs", "bo_cats_dogs_coloring_book.pdf"},
		{" Lily ", "Ocean", "lily_ocean_coloring_book.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := PDFFileName(tt.childName, tt.theme); got != tt.want {
				t.Errorf("期待値 %q, 実際の値 %q", tt.want, got)
			}
		})
	}
}
