package objects

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/rhyn0/oxide-git/utils"
	"gopkg.in/src-d/go-billy.v4"
)

type Blob struct {
	content []byte
	hash    string
}

func NewBlob(content []byte) *Blob {
	// ComputeHash only fails for unknown object types
	hash, _ := utils.ComputeHash(content, utils.BlobObjectType)
	return &Blob{
		content: content,
		hash:    hash,
	}
}

// NewBlobFromFile reads filepath from fs into a blob.
func NewBlobFromFile(fs billy.Basic, filepath string) (*Blob, error) {
	content, err := ReadFile(fs, filepath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file %s", filepath)
	}
	return NewBlob(content), nil
}

// ReadFile returns the whole content of filename.
func ReadFile(fs billy.Basic, filename string) ([]byte, error) {
	f, err := fs.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func (b *Blob) Hash() string {
	return b.hash
}

func (b *Blob) Type() utils.ObjectType {
	return utils.BlobObjectType
}

func (b *Blob) Content() []byte {
	return b.content
}

func (b *Blob) Size() int {
	return len(b.content)
}

func (b *Blob) Header() string {
	return utils.BuildHeader(utils.BlobObjectType, b.Size())
}

func (b *Blob) Data() []byte {
	return EncodeObject(utils.BlobObjectType, b.content)
}

func (b *Blob) String() string {
	return fmt.Sprintf("Blob{hash: %s, size: %d bytes}", b.hash, b.Size())
}
