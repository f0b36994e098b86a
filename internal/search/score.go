// Package search ranks client records against a free-text query using
// weighted token matching. The weights are fixed design constants shared
// with the existing application and must not change.
package search

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/evergreenpantry/pantryledger/internal/model"
)

// Per-token weights, highest-priority tier first. A token scores at most
// one tier per client; token scores sum across the query.
const (
	weightNamePart    = 100 // token is a complete leading name part
	weightFirstPrefix = 80  // first name starts with token
	weightLastPrefix  = 70  // last name starts with token
	weightLaterPart   = 50  // a later name part starts with token
	weightContains    = 30  // full name contains token anywhere
	weightPhone       = 25  // digits of token appear in the phone number
)

// recencyDivisor scales the last-updated epoch-millisecond timestamp
// down far enough that the bonus stays below 1 for any realistic date,
// so it only ever breaks ties between equal token scores and can never
// flip a genuine weight difference.
const recencyDivisor = 1e16

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lower-cases s and strips diacritics, so "José" matches "jose".
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Tokenize splits a query into normalized tokens on whitespace.
func Tokenize(query string) []string {
	return strings.Fields(Fold(query))
}

// Digits strips everything but ASCII digits, for phone comparison.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// Score returns the relevance of a client for the given normalized
// tokens. Zero means no match at all. The recency bonus is added once
// per client, only when at least one token matched, so non-matches stay
// at exactly zero.
func Score(c model.Client, tokens []string) float64 {
	first := Fold(c.FirstName)
	last := Fold(c.LastName)
	full := strings.TrimSpace(first + " " + last)
	phone := Digits(c.Phone)

	var base float64
	for _, tok := range tokens {
		switch {
		case full == tok || strings.HasPrefix(full, tok+" "):
			base += weightNamePart
		case strings.HasPrefix(first, tok):
			base += weightFirstPrefix
		case strings.HasPrefix(last, tok):
			base += weightLastPrefix
		case strings.Contains(full, " "+tok):
			base += weightLaterPart
		case strings.Contains(full, tok):
			base += weightContains
		case phone != "" && Digits(tok) != "" && strings.Contains(phone, Digits(tok)):
			base += weightPhone
		}
	}
	if base == 0 {
		return 0
	}
	if c.UpdatedAt.IsZero() {
		return base
	}
	return base + float64(c.UpdatedAt.UnixMilli())/recencyDivisor
}

// Match pairs a client with its relevance score.
type Match struct {
	Client model.Client
	Score  float64
}

// Rank scores every client against the query and returns matches sorted
// by descending score, dropping clients that did not match at all. An
// empty or whitespace-only query returns nil: callers bypass scoring and
// fall back to the alphabetical grouped listing.
func Rank(clients []model.Client, query string) []Match {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(clients))
	for _, c := range clients {
		if s := Score(c, tokens); s > 0 {
			matches = append(matches, Match{Client: c, Score: s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
