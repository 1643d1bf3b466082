package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/rhyn0/oxide-git/internal/constants"
)

type ObjectType string

// ErrInvalidObjectType is returned for a type word other than blob, tree or commit.
var ErrInvalidObjectType = errors.New("invalid object type")

const (
	BlobObjectType   ObjectType = "blob"
	TreeObjectType   ObjectType = "tree"
	CommitObjectType ObjectType = "commit"
)

func (ot ObjectType) IsValid() bool {
	switch ot {
	case BlobObjectType, TreeObjectType, CommitObjectType:
		return true
	default:
		return false
	}
}

// ParseObjectType maps the header word of a stored object to its type.
func ParseObjectType(s string) (ObjectType, error) {
	ot := ObjectType(s)
	if !ot.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidObjectType, s)
	}
	return ot, nil
}

// BuildHeader returns the canonical object header "<type> <size>\0".
func BuildHeader(objectType ObjectType, size int) string {
	return fmt.Sprintf("%v %d\x00", objectType, size)
}

// ComputeHash calculates SHA-1 hash for Object content
func ComputeHash(content []byte, objectType ObjectType) (string, error) {
	if !objectType.IsValid() {
		return "", fmt.Errorf("%w: %s - hash not computed", ErrInvalidObjectType, objectType)
	}

	// format: "ObjectType <size>\0<content>"
	hasher := sha1.New()
	hasher.Write([]byte(BuildHeader(objectType, len(content))))
	hasher.Write(content)
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// IsValidHash reports whether s is a 40 character lowercase hex object id.
func IsValidHash(s string) bool {
	if len(s) != constants.HashStringLength {
		return false
	}
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}

// ObjectPath returns the shard directory and slash separated object path for hash,
// relative to the objects directory: "ab", "ab/cdef...".
func ObjectPath(hash string) (dir, file string) {
	dir = hash[:constants.HashDirPrefixLength]
	return dir, path.Join(dir, hash[constants.HashDirPrefixLength:])
}

// BuildDirPath constructs os-agnostic display direcotry path with trailing separator preserving all components.
// Unlike filepath.Join, does not normalize "." or remove redundant separators.
func BuildDirPath(dirs ...string) string {
	return strings.Join(dirs, string(filepath.Separator)) + string(filepath.Separator)
}
