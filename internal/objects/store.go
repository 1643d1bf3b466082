package objects

import (
	"bytes"
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
	"github.com/rhyn0/oxide-git/internal/constants"
	"github.com/rhyn0/oxide-git/utils"
	"gopkg.in/src-d/go-billy.v4"
)

// ObjectStore manages storage of objects under <metadata dir>/objects
type ObjectStore struct {
	fs billy.Filesystem // rooted at the repository metadata directory
}

func NewObjectStore(fs billy.Filesystem) *ObjectStore {
	return &ObjectStore{
		fs: fs,
	}
}

// Init creates the objects directory. It refuses to run twice.
func (store *ObjectStore) Init() error {
	_, err := store.fs.Stat(constants.Objects)
	if err == nil {
		return errors.Wrapf(ErrAlreadyExists, "object store at %s", constants.Objects)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return &IOError{Op: "stat", Path: constants.Objects, Err: err}
	}

	if err := store.fs.MkdirAll(constants.Objects, constants.DirPerms); err != nil {
		return &IOError{Op: "mkdir", Path: constants.Objects, Err: err}
	}
	return nil
}

// Put hashes content as objectType, stores it and returns its id.
func (store *ObjectStore) Put(objectType utils.ObjectType, content []byte) (string, error) {
	object, err := NewRawObject(objectType, content)
	if err != nil {
		return "", err
	}
	if err := store.Store(object); err != nil {
		return "", err
	}
	return object.Hash(), nil
}

// Store saves an object to objects/<first 2 chars>/<rest>
// Returns nil if object already exists
func (store *ObjectStore) Store(object Object) error {
	hash := object.Hash()
	objectDir, objectFile := store.objectPath(hash)

	// Check if object already exists (content-addressable)
	_, err := store.fs.Stat(objectFile)
	if err == nil {
		slog.Debug("Object with this hash already exists",
			"hash", hash)
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return &IOError{Op: "stat", Path: objectFile, Err: err}
	}

	if err := store.fs.MkdirAll(objectDir, constants.DirPerms); err != nil {
		return &IOError{Op: "mkdir", Path: objectDir, Err: err}
	}

	compressedData, err := compressObject(object)
	if err != nil {
		return errors.Wrap(err, "failed to compress object")
	}

	// Write next to the destination and rename, so a reader never sees a partial object
	tmp, err := store.fs.TempFile(objectDir, constants.TempObjectPrefix)
	if err != nil {
		return &IOError{Op: "create", Path: objectDir, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(compressedData); err != nil {
		tmp.Close()
		store.removeTemp(tmpName)
		return &IOError{Op: "write", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		store.removeTemp(tmpName)
		return &IOError{Op: "close", Path: tmpName, Err: err}
	}
	if err := store.fs.Rename(tmpName, objectFile); err != nil {
		store.removeTemp(tmpName)
		return &IOError{Op: "rename", Path: objectFile, Err: err}
	}

	slog.Debug("Stored object",
		"hash", hash,
		"type", object.Type(),
		"size", len(object.Content()))
	return nil
}

func (store *ObjectStore) removeTemp(name string) {
	if err := store.fs.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to remove temporary object file",
			"path", name,
			"error", err)
	}
}

func compressObject(object Object) ([]byte, error) {
	var buffer bytes.Buffer
	// Create a new writer that compresses and writes data to the buffer
	writer := zlib.NewWriter(&buffer)

	if _, err := writer.Write(object.Data()); err != nil {
		return nil, err
	}

	// Call Close in order to flush any buffered data
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// Get reads an object by hash. When expected is given, the stored type must match it.
func (store *ObjectStore) Get(hash string, expected ...utils.ObjectType) (*RawObject, error) {
	if !utils.IsValidHash(hash) {
		return nil, errors.Wrapf(ErrInvalidHash, "%q", hash)
	}
	_, objectFile := store.objectPath(hash)

	file, err := store.fs.Open(objectFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(ErrNotFound, "object %s", hash)
	}
	if err != nil {
		return nil, &IOError{Op: "open", Path: objectFile, Err: err}
	}
	defer file.Close()

	reader, err := zlib.NewReader(file)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidObject, "object %s is not zlib compressed: %v", hash, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidObject, "failed to read decompressed object %s: %v", hash, err)
	}

	object, err := DecodeObject(data)
	if err != nil {
		return nil, errors.Wrapf(err, "object %s", hash)
	}

	if object.Hash() != hash {
		return nil, errors.Wrapf(ErrInvalidObject, "hash mismatch: expected %s, got %s", hash, object.Hash())
	}

	for _, want := range expected {
		if object.Type() != want {
			return nil, &TypeMismatchError{Hash: hash, Expected: want, Actual: object.Type()}
		}
	}

	return object, nil
}

// ReadBlob reads a blob from storage by hash
func (store *ObjectStore) ReadBlob(hash string) (*Blob, error) {
	object, err := store.Get(hash, utils.BlobObjectType)
	if err != nil {
		return nil, err
	}
	return NewBlob(object.Content()), nil
}

// ReadTree reads and parses a tree from storage by hash
func (store *ObjectStore) ReadTree(hash string) (*Tree, error) {
	object, err := store.Get(hash, utils.TreeObjectType)
	if err != nil {
		return nil, err
	}
	tree, err := ParseTree(object.Content())
	if err != nil {
		return nil, errors.Wrapf(err, "tree %s", hash)
	}
	return tree, nil
}

// ReadCommit reads and parses a commit from storage by hash
func (store *ObjectStore) ReadCommit(hash string) (*Commit, error) {
	object, err := store.Get(hash, utils.CommitObjectType)
	if err != nil {
		return nil, err
	}
	commit, err := ParseCommit(object.Content())
	if err != nil {
		return nil, errors.Wrapf(err, "commit %s", hash)
	}
	return commit, nil
}

// Exists checks if an object exists in storage
func (store *ObjectStore) Exists(hash string) bool {
	if !utils.IsValidHash(hash) {
		return false
	}
	_, objectFile := store.objectPath(hash)
	_, err := store.fs.Stat(objectFile)
	return err == nil
}

func (store *ObjectStore) objectPath(hash string) (dir, file string) {
	shard, rel := utils.ObjectPath(hash)
	return store.fs.Join(constants.Objects, shard), store.fs.Join(constants.Objects, rel)
}
