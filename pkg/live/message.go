package live

import (
	"github.com/vango-dev/marks/pkg/render"
	"github.com/vango-dev/marks/pkg/vdom"
)

// MessageType identifies a WebSocket message.
type MessageType string

const (
	// MessageReset carries the full chart markup.
	MessageReset MessageType = "reset"

	// MessagePatch carries incremental changes.
	MessagePatch MessageType = "patch"

	// MessageError reports a server-side failure, e.g. a bad dataset reload.
	MessageError MessageType = "error"
)

// Message is sent to browsers via WebSocket.
//
// Seq orders patches against resets: a reset with Seq n already contains
// every patch numbered n or lower. Zero means unordered.
type Message struct {
	Type    MessageType `json:"type"`
	Seq     uint64      `json:"seq,omitempty"`
	Frame   int         `json:"frame"`
	Name    string      `json:"name,omitempty"`
	HTML    string      `json:"html,omitempty"`
	Patches []WirePatch `json:"patches,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// WirePatch is the JSON form of a vdom.Patch. Inserted and replacement
// nodes travel as markup with their IDs attached.
type WirePatch struct {
	Op     string `json:"op"`
	ID     string `json:"id,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  string `json:"value,omitempty"`
	HTML   string `json:"html,omitempty"`
	Parent string `json:"parent,omitempty"`
	Index  int    `json:"index"`
}

// encodePatches converts patches for the wire. Node IDs must already be
// assigned.
func encodePatches(r *render.Renderer, patches []vdom.Patch) ([]WirePatch, error) {
	out := make([]WirePatch, len(patches))
	for i, p := range patches {
		wp := WirePatch{
			Op:     p.Op.String(),
			ID:     p.ID,
			Key:    p.Key,
			Value:  p.Value,
			Parent: p.ParentID,
			Index:  p.Index,
		}
		if p.Node != nil {
			html, err := r.RenderToString(p.Node)
			if err != nil {
				return nil, err
			}
			wp.HTML = html
		}
		out[i] = wp
	}
	return out, nil
}
