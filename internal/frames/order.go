package frames

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gifmaker/internal/failures"
)

// OrderKey is the sort key derived from a file name. Fallback is set when the
// name has no parseable integer prefix and Value was defaulted to zero.
type OrderKey struct {
	Value    int64
	Fallback bool
}

func (k OrderKey) String() string {
	if k.Fallback {
		return "0 (fallback)"
	}
	return strconv.FormatInt(k.Value, 10)
}

// ParseOrderKey takes the segment of name before its first "." and parses it
// as a base-10 signed 32-bit integer.
func ParseOrderKey(name string) OrderKey {
	prefix, _, _ := strings.Cut(name, ".")
	value, err := strconv.ParseInt(prefix, 10, 32)
	if err != nil {
		return OrderKey{Fallback: true}
	}
	return OrderKey{Value: value}
}

// Candidate is one directory entry scheduled for decoding.
type Candidate struct {
	Name string
	Path string
	// Index is the position in the listing order reported by the filesystem.
	Index int
	Key   OrderKey
}

// Plan lists dir and returns its entries in frame order without decoding them.
func Plan(dir string) ([]Candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, failures.Wrap(failures.ErrInvalidDirectory, "list frames", fmt.Sprintf("read directory %s", dir), err)
	}
	candidates := make([]Candidate, 0, len(entries))
	for idx, entry := range entries {
		name := entry.Name()
		candidates = append(candidates, Candidate{
			Name:  name,
			Path:  filepath.Join(dir, name),
			Index: idx,
			Key:   ParseOrderKey(name),
		})
	}
	SortCandidates(candidates)
	return candidates, nil
}

// SortCandidates orders candidates ascending by key value. Equal keys,
// including fallback keys, keep their listing order.
func SortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Key.Value < candidates[j].Key.Value
	})
}
