package objects

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/rhyn0/oxide-git/internal/constants"
	"github.com/rhyn0/oxide-git/utils"
)

const logDateLayout = "Mon Jan 2 15:04:05 2006 -0700"

// Commit represents a snapshot of the repository
type Commit struct {
	hash         string
	content      []byte
	treeHash     string
	parentHashes []string
	author       Signature
	committer    Signature
	message      []byte
}

// NewCommit encodes a commit. The message may hold arbitrary bytes; trailing
// whitespace is trimmed and exactly one newline is written after it.
func NewCommit(treeHash string, parentHashes []string, author, committer Signature, message []byte) (*Commit, error) {
	if !utils.IsValidHash(treeHash) {
		return nil, errors.Wrapf(ErrInvalidHash, "tree %q", treeHash)
	}
	for _, parent := range parentHashes {
		if !utils.IsValidHash(parent) {
			return nil, errors.Wrapf(ErrInvalidHash, "parent %q", parent)
		}
	}
	if err := author.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid author")
	}
	if err := committer.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid committer")
	}

	parents := append([]string(nil), parentHashes...)
	message = bytes.TrimRightFunc(message, unicode.IsSpace)

	content := buildCommitContent(treeHash, parents, author, committer, message)
	hash, err := utils.ComputeHash(content, utils.CommitObjectType)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hash for commit: %v", err)
	}

	return &Commit{
		hash:         hash,
		content:      content,
		treeHash:     treeHash,
		parentHashes: parents,
		author:       author,
		committer:    committer,
		message:      append([]byte(nil), message...),
	}, nil
}

// NewInitialCommit creates a commit without parents.
func NewInitialCommit(treeHash string, author Signature, message []byte) (*Commit, error) {
	return NewCommit(treeHash, nil, author, author, message)
}

func buildCommitContent(treeHash string, parentHashes []string, author, committer Signature, message []byte) []byte {
	var buf bytes.Buffer

	// Tree reference
	fmt.Fprintf(&buf, "%s%s\n", constants.CommitTreePrefix, treeHash)

	for _, parent := range parentHashes {
		fmt.Fprintf(&buf, "%s%s\n", constants.CommitParentPrefix, parent)
	}

	buf.WriteString(author.line(constants.CommitAuthorPrefix))
	buf.WriteByte('\n')
	buf.WriteString(committer.line(constants.CommitCommitterPrefix))
	buf.WriteByte('\n')

	// Blank line before message
	buf.WriteByte('\n')

	buf.Write(message)
	buf.WriteByte('\n')

	return buf.Bytes()
}

// ParseCommit decodes a commit payload.
//
// Header lines are classified by prefix. The first blank line ends the header
// block; a line matching no prefix also ends it and becomes the first message
// line. Everything after the boundary, rejoined with "\n", is the message,
// minus the single newline the encoder appends.
func ParseCommit(content []byte) (*Commit, error) {
	commit := &Commit{content: content}
	var hasTree, hasAuthor, hasCommitter bool

	lines := bytes.Split(content, []byte{'\n'})
	i := 0
headers:
	for ; i < len(lines); i++ {
		line := string(lines[i])
		switch {
		case strings.HasPrefix(line, constants.CommitTreePrefix):
			if hasTree {
				return nil, errors.Wrap(ErrMalformedCommit, "duplicate tree line")
			}
			commit.treeHash = line[len(constants.CommitTreePrefix):]
			if !utils.IsValidHash(commit.treeHash) {
				return nil, errors.Wrapf(ErrMalformedCommit, "invalid tree id %q", commit.treeHash)
			}
			hasTree = true
		case strings.HasPrefix(line, constants.CommitParentPrefix):
			parent := line[len(constants.CommitParentPrefix):]
			if !utils.IsValidHash(parent) {
				return nil, errors.Wrapf(ErrMalformedCommit, "invalid parent id %q", parent)
			}
			commit.parentHashes = append(commit.parentHashes, parent)
		case strings.HasPrefix(line, constants.CommitAuthorPrefix):
			author, err := parseSignature(line)
			if err != nil {
				return nil, err
			}
			commit.author = author
			hasAuthor = true
		case strings.HasPrefix(line, constants.CommitCommitterPrefix):
			committer, err := parseSignature(line)
			if err != nil {
				return nil, err
			}
			commit.committer = committer
			hasCommitter = true
		default:
			break headers
		}
	}

	if !hasTree || !hasAuthor || !hasCommitter {
		return nil, errors.Wrap(ErrMalformedCommit, "missing tree, author or committer line")
	}

	if i < len(lines) && len(lines[i]) == 0 {
		i++
	}
	if i < len(lines) {
		message := bytes.Join(lines[i:], []byte{'\n'})
		commit.message = bytes.TrimSuffix(message, []byte{'\n'})
	}

	hash, err := utils.ComputeHash(content, utils.CommitObjectType)
	if err != nil {
		return nil, err
	}
	commit.hash = hash

	return commit, nil
}

func (c *Commit) Hash() string {
	return c.hash
}

func (c *Commit) Type() utils.ObjectType {
	return utils.CommitObjectType
}

func (c *Commit) Content() []byte {
	return c.content
}

func (c *Commit) Size() int {
	return len(c.content)
}

func (c *Commit) Header() string {
	return utils.BuildHeader(utils.CommitObjectType, c.Size())
}

func (c *Commit) Data() []byte {
	return EncodeObject(utils.CommitObjectType, c.content)
}

func (c *Commit) TreeHash() string {
	return c.treeHash
}

// ParentHashes returns the parents in encoded order.
func (c *Commit) ParentHashes() []string {
	return append([]string(nil), c.parentHashes...)
}

func (c *Commit) Author() Signature {
	return c.author
}

func (c *Commit) Committer() Signature {
	return c.committer
}

// Message returns the raw message bytes without the trailing newline.
func (c *Commit) Message() []byte {
	return c.message
}

func (c *Commit) IsInitialCommit() bool {
	return len(c.parentHashes) == 0
}

func (c *Commit) String() string {
	return fmt.Sprintf("Commit{hash: %s, tree: %s, parents: %v, author: %s, message: %q}",
		c.hash, c.treeHash, c.parentHashes, c.author.String(), c.message)
}

// FormatLog renders c as a log entry: id, author, date and the message
// indented by four spaces.
func FormatLog(c *Commit) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "commit %s\n", c.hash)
	if len(c.parentHashes) > 1 {
		fmt.Fprintf(&buf, "Merge: %s\n", strings.Join(c.parentHashes, " "))
	}
	fmt.Fprintf(&buf, "Author: %s\n", c.author.String())
	fmt.Fprintf(&buf, "Date:   %s\n", c.author.When.Format(logDateLayout))
	buf.WriteByte('\n')

	for _, line := range bytes.Split(c.message, []byte{'\n'}) {
		buf.WriteString("    ")
		buf.Write(line)
		buf.WriteByte('\n')
	}

	return buf.String()
}
