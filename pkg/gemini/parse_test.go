package gemini

import (
	"errors"
	"testing"

	"google.golang.org/genai"
)

func TestParseStringList(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		n       int
		want    []string
		wantErr bool
	}{
		{
			name: "素の JSON 配列",
			raw:  `["a dinosaur", "a rocket", "a moon"]`,
			n:    3,
			want: []string{"a dinosaur", "a rocket", "a moon"},
		},
		{
			name: "コードフェンス付き",
			raw:  "```json\n[\"one\", \"two\"]\n```",
			n:    2,
			want: []string{"one", "two"},
		},
		{
			name: "前後に説明文がある",
			raw:  "Here you go: [\"x\"] enjoy!",
			n:    1,
			want: []string{"x"},
		},
		{
			name: "件数を検証しない",
			raw:  `["x", "y"]`,
			n:    0,
			want: []string{"x", "y"},
		},
		{name: "件数が足りない", raw: `["x"]`, n: 5, wantErr: true},
		{name: "文字列以外を含む", raw: `["x", 3]`, n: 2, wantErr: true},
		{name: "オブジェクト", raw: `{"prompts": "x"}`, n: 1, wantErr: true},
		{name: "空要素を含む", raw: `["x", "  "]`, n: 2, wantErr: true},
		{name: "JSON ではない", raw: "sorry, I can't", n: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringList(tt.raw, tt.n)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPromptFormat) {
					t.Fatalf("ErrInvalidPromptFormat を期待しましたが %v でした", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("期待値 %v, 実際の値 %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] 期待値 %q, 実際の値 %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestExtractImage(t *testing.T) {
	t.Run("画像なし", func(t *testing.T) {
		if _, err := extractImage(&genai.GenerateImagesResponse{}); !errors.Is(err, ErrNoImage) {
			t.Errorf("ErrNoImage を期待しましたが %v でした", err)
		}
		if _, err := extractImage(nil); !errors.Is(err, ErrNoImage) {
			t.Errorf("ErrNoImage を期待しましたが %v でした", err)
		}
	})

	t.Run("フィルタで除外", func(t *testing.T) {
		resp := &genai.GenerateImagesResponse{
			GeneratedImages: []*genai.GeneratedImage{{RAIFilteredReason: "blocked"}},
		}
		if _, err := extractImage(resp); !errors.Is(err, ErrNoImage) {
			t.Errorf("ErrNoImage を期待しましたが %v でした", err)
		}
	})

	t.Run("MIME タイプの補完", func(t *testing.T) {
		resp := &genai.GenerateImagesResponse{
			GeneratedImages: []*genai.GeneratedImage{{Image: &genai.Image{ImageBytes: []byte{0xff, 0xd8}}}},
		}
		got, err := extractImage(resp)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if got.MimeType != "image/jpeg" {
			t.Errorf("image/jpeg を期待しましたが %q でした", got.MimeType)
		}
		if len(got.Data) != 2 {
			t.Errorf("画像データが失われています: %v", got.Data)
		}
	})
}
