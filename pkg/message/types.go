// Package message defines the transcript data contract between conversation
// stores and the context engine: turn entries with a role, an optional
// timestamp, and content that is either plain text or a list of typed blocks.
package message

// Role identifies the author of a transcript entry.
type Role string

// Supported roles. Only RoleHuman and RoleAssistant are rendered into
// assembled context; other roles are carried but skipped by renderers.
const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// BlockType discriminates the variant stored in a ContentBlock.
type BlockType string

// Supported block types.
const (
	BlockText     BlockType = "text"
	BlockImage    BlockType = "image"
	BlockAudio    BlockType = "audio"
	BlockFile     BlockType = "file"
	BlockThinking BlockType = "thinking"
	BlockToolUse  BlockType = "tool_use"
)

// IsConversational reports whether entries with this role belong in a
// rendered transcript.
func (r Role) IsConversational() bool {
	return r == RoleHuman || r == RoleAssistant
}
