package objects

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rhyn0/oxide-git/utils"
)

// FileMode is the 6 digit octal mode written in front of every tree entry.
type FileMode string

const (
	ModeRegularFile FileMode = "100644" // Regular non-executable file
	ModeExecutable  FileMode = "100755" // Executable file
	ModeDirectory   FileMode = "040000" // Directory (tree)
)

const regularFileTypeBits = 0o100000

// FileModeFromPerm renders the permission bits of a regular file as a tree entry mode.
func FileModeFromPerm(perm os.FileMode) FileMode {
	return FileMode(fmt.Sprintf("%06o", regularFileTypeBits|uint32(perm.Perm())))
}

func (m FileMode) IsValid() bool {
	if len(m) != 6 {
		return false
	}
	_, err := strconv.ParseUint(string(m), 8, 32)
	return err == nil
}

func (m FileMode) IsDirectory() bool {
	return m == ModeDirectory
}

// Perm returns the permission bits carried by the mode.
func (m FileMode) Perm() os.FileMode {
	bits, err := strconv.ParseUint(string(m), 8, 32)
	if err != nil {
		return 0
	}
	return os.FileMode(bits).Perm()
}

// TreeEntry represents a single entry in a tree object
type TreeEntry struct {
	mode       FileMode
	objectType utils.ObjectType
	name       string
	hash       string
}

// NewTreeEntry builds an entry; directories reference trees, everything else blobs.
func NewTreeEntry(mode FileMode, name string, hash string) (*TreeEntry, error) {
	objectType := utils.BlobObjectType
	if mode.IsDirectory() {
		objectType = utils.TreeObjectType
	}
	return newTreeEntry(mode, objectType, name, hash)
}

func newTreeEntry(mode FileMode, objectType utils.ObjectType, name, hash string) (*TreeEntry, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("invalid file mode: %s", mode)
	}
	if mode.IsDirectory() != (objectType == utils.TreeObjectType) {
		return nil, fmt.Errorf("file mode %s does not match object type %s", mode, objectType)
	}
	if objectType != utils.BlobObjectType && objectType != utils.TreeObjectType {
		return nil, fmt.Errorf("invalid tree entry type: %s", objectType)
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\n\x00") {
		return nil, fmt.Errorf("invalid tree entry name: %q", name)
	}
	if !utils.IsValidHash(hash) {
		return nil, fmt.Errorf("invalid tree entry hash: %q", hash)
	}
	return &TreeEntry{
		mode:       mode,
		objectType: objectType,
		name:       name,
		hash:       hash,
	}, nil
}

func (e *TreeEntry) Mode() FileMode {
	return e.mode
}

func (e *TreeEntry) Type() utils.ObjectType {
	return e.objectType
}

func (e *TreeEntry) Name() string {
	return e.name
}

func (e *TreeEntry) Hash() string {
	return e.hash
}

func (e *TreeEntry) IsDirectory() bool {
	return e.objectType == utils.TreeObjectType
}

func (e *TreeEntry) IsExecutable() bool {
	return e.mode.Perm()&0o111 != 0
}

// Tree represents a directory snapshot
type Tree struct {
	entries []TreeEntry
	hash    string
}

// NewTree creates a tree object from the list of Tree Entries.
// Entries are serialized in the order given.
func NewTree(treeEntries []TreeEntry) (*Tree, error) {
	entries := make([]TreeEntry, len(treeEntries))
	copy(entries, treeEntries)

	treeContent := buildTreeContent(entries)
	hash, err := utils.ComputeHash(treeContent, utils.TreeObjectType)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hash for tree: %v", err)
	}

	return &Tree{
		entries: entries,
		hash:    hash,
	}, nil
}

// ParseTree decodes a tree payload.
func ParseTree(content []byte) (*Tree, error) {
	var entries []TreeEntry

	lines := bytes.Split(content, []byte{'\n'})
	if last := len(lines) - 1; len(lines[last]) != 0 {
		return nil, errors.Wrap(ErrInvalidObject, "tree payload does not end with a newline")
	}

	for _, line := range lines[:len(lines)-1] {
		parts := strings.SplitN(string(line), " ", 4)
		if len(parts) != 4 {
			return nil, errors.Wrapf(ErrInvalidObject, "malformed tree entry %q", line)
		}

		objectType, err := utils.ParseObjectType(parts[1])
		if err != nil {
			return nil, invalidObject(err)
		}

		entry, err := newTreeEntry(FileMode(parts[0]), objectType, parts[3], parts[2])
		if err != nil {
			return nil, invalidObject(err)
		}
		entries = append(entries, *entry)
	}

	return NewTree(entries)
}

// SortTreeEntries orders entries by name, directories compared as if they had a trailing "/".
func SortTreeEntries(entries []TreeEntry) {
	slices.SortStableFunc(entries, compareTreeEntries)
}

func compareTreeEntries(a, b TreeEntry) int {
	return strings.Compare(getSortableName(a), getSortableName(b))
}

func getSortableName(entry TreeEntry) string {
	if entry.IsDirectory() {
		return entry.Name() + "/"
	}
	return entry.Name()
}

// buildTreeContent renders one line per entry, filename last:
// 100644 blob 95d09f2b10159347eece71399a7e2e907ea3df4f hello.txt
// 040000 tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904 src
func buildTreeContent(entries []TreeEntry) []byte {
	var buf bytes.Buffer

	for _, entry := range entries {
		fmt.Fprintf(&buf, "%s %s %s %s\n", entry.Mode(), entry.Type(), entry.Hash(), entry.Name())
	}

	return buf.Bytes()
}

// Hash returns the SHA-1 hash of the tree
func (t *Tree) Hash() string {
	return t.hash
}

func (t *Tree) Type() utils.ObjectType {
	return utils.TreeObjectType
}

// Entries returns all tree entries
func (t *Tree) Entries() []TreeEntry {
	return t.entries
}

// Size returns the size of the tree content
func (t *Tree) Size() int {
	return len(buildTreeContent(t.entries))
}

// Content returns the raw tree content
func (t *Tree) Content() []byte {
	return buildTreeContent(t.entries)
}

// Header returns the object header
func (t *Tree) Header() string {
	return utils.BuildHeader(utils.TreeObjectType, t.Size())
}

func (t *Tree) Data() []byte {
	return EncodeObject(utils.TreeObjectType, t.Content())
}

// String returns a human-readable representation
func (t *Tree) String() string {
	return fmt.Sprintf("Tree{hash: %s, entries: %d}", t.hash, len(t.entries))
}

// FindEntry finds an entry by name
func (t *Tree) FindEntry(name string) (*TreeEntry, bool) {
	for _, entry := range t.entries {
		if entry.Name() == name {
			return &entry, true
		}
	}
	return nil, false
}
