package model

import (
	"context"
	"errors"
	"fmt"
)

// Node is one split or leaf of a regression tree. Leaves have Left < 0.
// Samples with x[Feature] <= Threshold go left.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Tree is stored flat; Nodes[0] is the root.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest averages the output of its trees, as a random forest regressor does.
type Forest struct {
	Trees       []Tree
	NumFeatures int
}

func (f *Forest) validate() error {
	if len(f.Trees) == 0 {
		return errors.New("forest has no trees")
	}
	if f.NumFeatures <= 0 {
		return errors.New("forest feature_count must be positive")
	}
	for ti, t := range f.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", ti)
		}
		for ni, n := range t.Nodes {
			if n.Left < 0 {
				continue
			}
			// children must come after their parent, which also rules out cycles
			if n.Left <= ni || n.Right <= ni || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
				return fmt.Errorf("tree %d node %d has invalid children", ti, ni)
			}
			if n.Feature < 0 || n.Feature >= f.NumFeatures {
				return fmt.Errorf("tree %d node %d splits on unknown feature %d", ti, ni, n.Feature)
			}
		}
	}
	return nil
}

func (t Tree) eval(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Left < 0 {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func (f *Forest) Predict(ctx context.Context, rows [][]float64) ([]float64, error) {
	if err := checkRows(rows, f.NumFeatures); err != nil {
		return nil, err
	}

	out := make([]float64, len(rows))
	for i, row := range rows {
		var sum float64
		for _, t := range f.Trees {
			sum += t.eval(row)
		}
		out[i] = sum / float64(len(f.Trees))
	}
	return out, nil
}
