package inference

import "sort"

// ClassIndex maps student names to the classes they were observed in. It is
// built once per batch and read-only afterwards.
type ClassIndex struct {
	classSet      map[string]struct{}
	nameToClasses map[string]map[string]struct{}
}

// NewClassIndex returns an empty index.
func NewClassIndex() *ClassIndex {
	return &ClassIndex{
		classSet:      make(map[string]struct{}),
		nameToClasses: make(map[string]map[string]struct{}),
	}
}

func (ix *ClassIndex) add(name, class string) {
	if name == "" || class == "" {
		return
	}
	ix.classSet[class] = struct{}{}
	set, ok := ix.nameToClasses[name]
	if !ok {
		set = make(map[string]struct{})
		ix.nameToClasses[name] = set
	}
	set[class] = struct{}{}
}

// Classes returns the sorted set of every class label seen.
func (ix *ClassIndex) Classes() []string {
	return sortedKeys(ix.classSet)
}

// ClassesOf returns the sorted classes observed for name.
func (ix *ClassIndex) ClassesOf(name string) []string {
	return sortedKeys(ix.nameToClasses[name])
}

// Names returns the number of distinct names indexed.
func (ix *ClassIndex) Names() int { return len(ix.nameToClasses) }

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
