package textutil

import (
	"math"
	"testing"
)

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "hello world", "hello world", 1.0},
		{"empty a", "", "hello", 0},
		{"empty b", "hello", "", 0},
		{"disjoint", "abc", "xyz", 0},
		{"shared prefix", "abcd", "abxy", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimilarityRatio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SimilarityRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityRatioSymmetric(t *testing.T) {
	a := "キャリアプランの迷いは優柔不断なのか"
	b := "キャリアの迷いは時代の要請なのか"
	if ab, ba := SimilarityRatio(a, b), SimilarityRatio(b, a); math.Abs(ab-ba) > 1e-9 {
		t.Errorf("ratio not symmetric: %v vs %v", ab, ba)
	}
}

func TestNormalizedSimilarityPunctuation(t *testing.T) {
	got := NormalizedSimilarity("Hello, world!", "Hello world")
	if got < 0.95 {
		t.Errorf("NormalizedSimilarity(punctuated) = %v, want >= 0.95", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii punctuation", "Hello, world!", "helloworld"},
		{"japanese punctuation", "専門を深めるべきか？視野を広げるべきか？", "専門を深めるべきか視野を広げるべきか"},
		{"markup stripped", "<break time='1s'/>こんにちは", "こんにちは"},
		{"fullwidth folded", "ＡＢＣ１２３", "abc123"},
		{"whitespace", "a b\tc\nd", "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdenticalJapanese(t *testing.T) {
	text := "専門を深めるべきか"
	if got := NormalizedSimilarity(text, text); got != 1.0 {
		t.Errorf("NormalizedSimilarity(identical) = %v, want 1.0", got)
	}
}
