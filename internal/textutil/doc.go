// Package textutil provides the text normalization and similarity primitives
// shared by the alignment engine and the consistency validator.
//
// Normalization strips markup tags, punctuation, and whitespace, applies NFKC
// compatibility folding so full-width and half-width variants compare equal,
// and lowercases the result. Similarity is a character-level longest-common-
// subsequence style ratio in [0,1], suitable for Japanese text where
// token-based measures break down.
package textutil
