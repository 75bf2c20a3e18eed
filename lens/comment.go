package lens

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// MaxCommentLen is the longest comment string that survives a save/load
// round trip of the model file. Longer strings are accepted by the live
// model but truncate on save, so they are rejected here instead.
const MaxCommentLen = 32

var tagPattern = regexp.MustCompile(`^(.*?)\s*(?:#([^#]+)#)?$`)

// CommentParam is the comment column, with an optional machine-readable tag
// embedded at the end as "comment #tag#". Get and Set see only the comment;
// the tag rides along untouched and has its own accessors.
type CommentParam struct {
	surf *Base
}

func newCommentParam(b *Base) *CommentParam {
	return &CommentParam{surf: b}
}

func (p *CommentParam) commentAndTag() (comment, tag string, err error) {
	n, err := p.surf.Num()
	if err != nil {
		return "", "", err
	}
	raw, err := p.surf.conn.GetSurfaceData(n, 1)
	if err != nil {
		return "", "", err
	}
	m := tagPattern.FindStringSubmatch(raw)
	return m[1], m[2], nil
}

func (p *CommentParam) setCommentAndTag(comment, tag string) error {
	value := comment
	if tag != "" {
		value = fmt.Sprintf("%s #%s#", strings.TrimRightFunc(comment, unicode.IsSpace), tag)
	}
	if len(value) > MaxCommentLen {
		return &CommentTooLongError{Encoded: value}
	}
	n, err := p.surf.Num()
	if err != nil {
		return err
	}
	_, err = p.surf.conn.SetSurfaceData(n, 1, value)
	return err
}

// Get returns the comment with any tag stripped.
func (p *CommentParam) Get() (string, error) {
	comment, _, err := p.commentAndTag()
	return comment, err
}

// Set replaces the comment, preserving the current tag. v must be a string.
func (p *CommentParam) Set(v any) error {
	comment, ok := v.(string)
	if !ok {
		return fmt.Errorf("comment value must be a string, got %T", v)
	}
	_, tag, err := p.commentAndTag()
	if err != nil {
		return err
	}
	return p.setCommentAndTag(comment, tag)
}

// Tag returns the embedded tag, or "" when the surface has none.
func (p *CommentParam) Tag() (string, error) {
	_, tag, err := p.commentAndTag()
	return tag, err
}

// SetTag replaces the tag, preserving the comment. An empty tag removes the
// marker entirely.
func (p *CommentParam) SetTag(tag string) error {
	comment, _, err := p.commentAndTag()
	if err != nil {
		return err
	}
	return p.setCommentAndTag(comment, tag)
}
