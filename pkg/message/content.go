package message

import (
	"encoding/json"
	"fmt"
)

// ContentKind discriminates the two shapes transcript content can take.
type ContentKind int

// Content shapes.
const (
	// ContentText is a plain string.
	ContentText ContentKind = iota
	// ContentBlocks is an ordered list of typed blocks.
	ContentBlocks
)

// Content is a two-case union: a plain text string, or a sequence of typed
// content blocks. The shape is resolved once at decode time; callers never
// inspect raw JSON.
type Content struct {
	kind   ContentKind
	text   string
	blocks []ContentBlock
}

// TextContent creates plain-string content.
func TextContent(text string) Content {
	return Content{kind: ContentText, text: text}
}

// BlocksContent creates block-list content.
func BlocksContent(blocks []ContentBlock) Content {
	cp := make([]ContentBlock, len(blocks))
	copy(cp, blocks)
	return Content{kind: ContentBlocks, blocks: cp}
}

// Kind returns which case the union holds.
func (c Content) Kind() ContentKind {
	return c.kind
}

// Blocks returns the block list. Nil for plain-text content.
func (c Content) Blocks() []ContentBlock {
	return c.blocks
}

// Text extracts the renderable text: the string itself for plain content,
// or the newline-joined text of all text blocks for block content.
func (c Content) Text() string {
	if c.kind == ContentText {
		return c.text
	}
	return textContent(c.blocks)
}

// MarshalJSON encodes plain content as a JSON string and block content as
// a JSON array, mirroring the wire shape produced by model APIs.
func (c Content) MarshalJSON() ([]byte, error) {
	if c.kind == ContentText {
		return json.Marshal(c.text)
	}
	if c.blocks == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.blocks)
}

// UnmarshalJSON accepts either a JSON string or a JSON array of blocks.
func (c *Content) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("message: empty content")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("message: decode text content: %w", err)
		}
		*c = Content{kind: ContentText, text: s}
		return nil
	case '[':
		var blocks []ContentBlock
		if err := json.Unmarshal(data, &blocks); err != nil {
			return fmt.Errorf("message: decode block content: %w", err)
		}
		*c = Content{kind: ContentBlocks, blocks: blocks}
		return nil
	case 'n': // null
		*c = Content{}
		return nil
	default:
		return fmt.Errorf("message: content must be a string or block array, got %q", data[0])
	}
}
