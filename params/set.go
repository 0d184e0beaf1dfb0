package params

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// Vector is a fixed-shape parameter record indexed by key order.
type Vector [Count]float64

// Set is the complete input handed to a mesh builder: the ranged values
// plus the structural seed and segment count, which are never mutated.
type Set struct {
	Seed     int64
	Segments int
	Values   Vector
}

// Get returns the value stored for k, or 0 for an undeclared key.
func (s Set) Get(k Key) float64 {
	i, ok := index[k]
	if !ok {
		return 0
	}
	return s.Values[i]
}

// Map returns the values keyed by parameter name.
func (s Set) Map() map[Key]float64 {
	m := make(map[Key]float64, Count)
	for i, d := range definitions {
		m[d.Key] = s.Values[i]
	}
	return m
}

// Normalized returns every value rescaled to [0, 1] within its range.
func (s Set) Normalized() []float64 {
	out := make([]float64, Count)
	for i, d := range definitions {
		span := d.Range.Span()
		if span == 0 {
			continue
		}
		out[i] = (s.Values[i] - d.Range.Min) / span
	}
	return out
}

// InRange reports whether every value lies within its declared range.
func (s Set) InRange() bool {
	for i, d := range definitions {
		if !d.Range.Contains(s.Values[i]) {
			return false
		}
	}
	return true
}

// MarshalYAML renders the set as an ordered mapping so the parameter
// display lists keys in declaration order.
func (s Set) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key, value, tag string) {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value},
		)
	}
	add("seed", strconv.FormatInt(s.Seed, 10), "!!int")
	add("segments", strconv.Itoa(s.Segments), "!!int")
	for i, d := range definitions {
		add(string(d.Key), strconv.FormatFloat(s.Values[i], 'f', 3, 64), "!!float")
	}
	return node, nil
}

// Format returns the human-readable parameter listing.
func (s Set) Format() string {
	out, err := yaml.Marshal(s)
	if err != nil {
		return err.Error()
	}
	return string(out)
}
