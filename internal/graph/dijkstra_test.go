package graph

import (
	"errors"
	"testing"
)

// A small weighted DAG: 1 -> 2 (4), 1 -> 3 (1), 3 -> 2 (1), 2 -> 4 (1), 3 -> 5 (10).
// Terminal nodes are 4 and 5.
func testExpand(n int) ([]Edge[int], error) {
	switch n {
	case 1:
		return []Edge[int]{{To: 2, Weight: 4}, {To: 3, Weight: 1}}, nil
	case 2:
		return []Edge[int]{{To: 4, Weight: 1}}, nil
	case 3:
		return []Edge[int]{{To: 2, Weight: 1}, {To: 5, Weight: 10}}, nil
	}
	return nil, nil
}

func TestShortestPath_NearestTerminal(t *testing.T) {
	dist, path, err := ShortestPath(1, testExpand)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if dist != 3 {
		t.Errorf("dist = %d, want 3", dist)
	}
	want := []int{1, 3, 2, 4}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path = %v, want %v", path, want)
			break
		}
	}
}

func TestShortestPath_OriginTerminal(t *testing.T) {
	dist, path, err := ShortestPath(9, testExpand)
	if err != nil {
		t.Fatal(err)
	}
	if dist != 0 || len(path) != 1 || path[0] != 9 {
		t.Errorf("ShortestPath(9) = %d, %v, want 0, [9]", dist, path)
	}
}

func TestShortestPath_ExpandError(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := ShortestPath(1, func(int) ([]Edge[int], error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}
