package codec

import "github.com/hupe1980/millerindex/miller"

// FindRecord is the outcome of resolving one Miller index.
// Position is -1 when Found is false.
type FindRecord struct {
	Index    miller.Index `json:"index"`
	Position int          `json:"position"`
	Found    bool         `json:"found"`
}

// ListRecord is one seed's neighbour or area list, labelled with the seed's
// position and stored index.
type ListRecord struct {
	Position int          `json:"position"`
	Index    miller.Index `json:"index"`
	List     []int        `json:"list"`
}

// ListRecords pairs lists[p] with indices[p]. Seeds with a nil list, such as
// area seeds excluded by a mask, are skipped. An empty non-nil list is kept.
func ListRecords(indices []miller.Index, lists [][]int) []ListRecord {
	out := make([]ListRecord, 0, len(lists))
	for p, list := range lists {
		if list == nil {
			continue
		}
		out = append(out, ListRecord{Position: p, Index: indices[p], List: list})
	}
	return out
}
