package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/snip/internal/model"
)

// Result represents a fuzzy search match over saved snippets.
type Result struct {
	Entry          model.Entry
	Folder         string // empty when the entry came from the liked collection
	MatchedIndexes []int
	Score          int
}

// candidate pairs an entry with its origin for the fuzzy source.
type candidate struct {
	entry  model.Entry
	folder string
}

// candidates implements fuzzy.Source over snippet texts.
type candidates []candidate

func (c candidates) String(i int) string { return c[i].entry.Text }
func (c candidates) Len() int            { return len(c) }

// Entries searches the given entries by text using fuzzy matching.
// Returns results sorted by match score (best first).
func Entries(entries []model.Entry, query string) []Result {
	return run(toCandidates(entries, ""), query)
}

// Everything searches the liked collection and every folder in one
// pass, tagging each result with its origin. Folder names are walked
// in the given order so equal-score results stay stable.
func Everything(liked []model.Entry, folders map[string][]model.Entry, order []string, query string) []Result {
	pool := toCandidates(liked, "")
	for _, name := range order {
		pool = append(pool, toCandidates(folders[name], name)...)
	}
	return run(pool, query)
}

func toCandidates(entries []model.Entry, folder string) candidates {
	out := make(candidates, 0, len(entries))
	for _, e := range entries {
		out = append(out, candidate{entry: e, folder: folder})
	}
	return out
}

func run(pool candidates, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, pool)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Entry:          pool[m.Index].entry,
			Folder:         pool[m.Index].folder,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
