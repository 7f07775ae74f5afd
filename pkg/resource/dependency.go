package resource

import "sort"

// Stage is a position in the teardown. All resources of its kinds are
// attempted before the next stage begins.
type Stage struct {
	Index int
	Name  string
	// Kinds are deleted one after another in this order
	Kinds []Kind
}

var stageNames = map[int]string{
	1: "NAT gateways",
	2: "internet gateways",
	3: "route tables",
	4: "instances",
	5: "subnets",
	6: "security groups",
	7: "network ACLs",
	8: "VPC endpoints",
	9: "VPC",
}

// StageOf returns the stage index in which resources of the given kind are deleted.
func StageOf(k Kind) int {
	return kinds[k].stage
}

// Stages returns the fixed sequence of teardown stages, derived from the dependency
// order of the resource kinds. The last stage only contains the VPC itself.
func Stages() []Stage {
	byIndex := map[int]*Stage{}

	for _, k := range Kinds() {
		idx := StageOf(k)

		s, ok := byIndex[idx]
		if !ok {
			s = &Stage{Index: idx, Name: stageNames[idx]}
			byIndex[idx] = s
		}
		s.Kinds = append(s.Kinds, k)
	}

	result := make([]Stage, 0, len(byIndex))
	for _, s := range byIndex {
		result = append(result, *s)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Index < result[j].Index
	})

	return result
}
