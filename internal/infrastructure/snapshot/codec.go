// Package snapshot serializes tables and keeps them on the local filesystem.
//
// A table is encoded as a JSON object keyed by row index
// ({"0": {...}, "1": {...}}), so a snapshot written by one tool can be read
// back row for row by another.
package snapshot

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// Encode serializes rows keyed by their index.
func Encode[T any](rows []T) ([]byte, error) {
	keyed := make(map[string]T, len(rows))
	for i, row := range rows {
		keyed[strconv.Itoa(i)] = row
	}

	data, err := json.Marshal(keyed)
	if err != nil {
		return nil, fmt.Errorf("encoding table: %w", err)
	}
	return data, nil
}

// Decode parses a row-index keyed table and returns the rows in index order.
func Decode[T any](data []byte) ([]T, error) {
	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, fmt.Errorf("decoding table: %w", err)
	}
	if keyed == nil {
		return nil, fmt.Errorf("decoding table: not an object")
	}

	indexes := make([]int, 0, len(keyed))
	byIndex := make(map[int]json.RawMessage, len(keyed))
	for key, raw := range keyed {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || strconv.Itoa(idx) != key {
			return nil, fmt.Errorf("decoding table: invalid row index %q", key)
		}
		if _, dup := byIndex[idx]; dup {
			return nil, fmt.Errorf("decoding table: duplicate row index %d", idx)
		}
		indexes = append(indexes, idx)
		byIndex[idx] = raw
	}
	slices.Sort(indexes)

	rows := make([]T, 0, len(indexes))
	for _, idx := range indexes {
		var row T
		if err := json.Unmarshal(byIndex[idx], &row); err != nil {
			return nil, fmt.Errorf("decoding table row %d: %w", idx, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
