package objects

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rhyn0/oxide-git/internal/constants"
	"github.com/rhyn0/oxide-git/utils"
)

// Object represents any ogit object that can be stored
// All ogit objects (blobs, trees, commits) must implement this interface
type Object interface {
	// Hash returns the SHA-1 hash of the object
	Hash() string

	// Type returns the variant written in the object header
	Type() utils.ObjectType

	// Content returns the payload without header
	Content() []byte

	// Data returns the complete object data including header
	// Format: "<type> <size>\0<content>"
	Data() []byte
}

// EncodeObject returns header ‖ payload for the given variant.
func EncodeObject(objectType utils.ObjectType, content []byte) []byte {
	header := utils.BuildHeader(objectType, len(content))
	data := make([]byte, 0, len(header)+len(content))
	data = append(data, header...)
	return append(data, content...)
}

// RawObject is a decoded object whose payload has not been interpreted yet.
type RawObject struct {
	objectType utils.ObjectType
	content    []byte
	hash       string
}

// NewRawObject hashes content as objectType.
func NewRawObject(objectType utils.ObjectType, content []byte) (*RawObject, error) {
	hash, err := utils.ComputeHash(content, objectType)
	if err != nil {
		return nil, invalidObject(err)
	}
	return &RawObject{
		objectType: objectType,
		content:    content,
		hash:       hash,
	}, nil
}

// DecodeObject parses "<type> <size>\0<payload>".
func DecodeObject(data []byte) (*RawObject, error) {
	nullByteIndex := bytes.IndexByte(data, constants.NullByte)
	if nullByteIndex == -1 {
		return nil, errors.Wrap(ErrInvalidObject, "no null byte found")
	}

	header := string(data[:nullByteIndex])
	content := data[nullByteIndex+1:]

	typeName, sizeText, found := strings.Cut(header, " ")
	if !found {
		return nil, errors.Wrapf(ErrInvalidObject, "malformed header %q", header)
	}

	objectType, err := utils.ParseObjectType(typeName)
	if err != nil {
		return nil, invalidObject(err)
	}

	size, err := strconv.Atoi(sizeText)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidObject, "malformed size %q", sizeText)
	}
	if size != len(content) {
		return nil, errors.Wrapf(ErrInvalidObject, "header declares %d bytes, payload has %d", size, len(content))
	}

	return NewRawObject(objectType, content)
}

func (o *RawObject) Hash() string {
	return o.hash
}

func (o *RawObject) Type() utils.ObjectType {
	return o.objectType
}

func (o *RawObject) Content() []byte {
	return o.content
}

func (o *RawObject) Size() int {
	return len(o.content)
}

func (o *RawObject) Data() []byte {
	return EncodeObject(o.objectType, o.content)
}

func (o *RawObject) String() string {
	return fmt.Sprintf("%s{hash: %s, size: %d bytes}", o.objectType, o.hash, o.Size())
}
