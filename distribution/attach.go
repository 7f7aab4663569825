package distribution

import (
	"sort"

	"github.com/google/uuid"

	"github.com/dylanwal/BigSMILES/bigsmiles"
)

// AttachmentID identifies one distribution attachment on a graph.
type AttachmentID = uuid.UUID

// Attachment pairs a distribution with the stochastic object it
// describes. ObjectIndex counts stochastic objects in notation order.
type Attachment struct {
	ID           AttachmentID
	ObjectIndex  int
	Distribution Distribution
}

// Attach binds d to the stochastic object at objectIndex and returns a
// handle for later lookup or removal. Each object takes at most one
// distribution.
func Attach(g *bigsmiles.Graph, objectIndex int, d Distribution) (AttachmentID, error) {
	id := uuid.New()
	att := Attachment{ID: id, ObjectIndex: objectIndex, Distribution: d}
	if err := g.AttachDistribution(objectIndex, att); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Detach removes the attachment with the given handle and returns its
// distribution. The second return is false when no attachment carries
// that handle.
func Detach(g *bigsmiles.Graph, id AttachmentID) (Distribution, bool) {
	for index, v := range g.DistributionAttachments() {
		att, ok := v.(Attachment)
		if !ok || att.ID != id {
			continue
		}
		if g.DetachDistribution(index) != nil {
			return att.Distribution, true
		}
	}
	return nil, false
}

// Attached returns the graph's attachments ordered by stochastic
// object index. Attachments placed by other packages are skipped.
func Attached(g *bigsmiles.Graph) []Attachment {
	var out []Attachment
	for _, v := range g.DistributionAttachments() {
		if att, ok := v.(Attachment); ok {
			out = append(out, att)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ObjectIndex < out[j].ObjectIndex })
	return out
}
