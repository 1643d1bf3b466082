package constants

import "os"

// Command name constants used in tests and error messages.
// Cobra Use fields remain inline for CLI discoverability.
const (
	InitCmdName       = "init"
	HashObjectCmdName = "hash-object"
	CatFileCmdName    = "cat-file"
	WriteTreeCmdName  = "write-tree"
	ReadTreeCmdName   = "read-tree"
	CommitTreeCmdName = "commit-tree"
	CommitCmdName     = "commit"
	LogCmdName        = "log"
	CheckoutCmdName   = "checkout"
)

// Repository directory and file names define the ogit metadata structure.
const (
	// Ogit is the repository metadata directory. It is never snapshotted.
	Ogit = ".ogit"

	// Objects stores content-addressable objects (blobs, trees, commits).
	Objects = "objects"

	// Head holds the id of the current commit, or nothing before the first commit.
	Head = "HEAD"

	// Config is the INI file holding user identity and core settings.
	Config = "config"

	// DefaultIgnoreFile lists ignore patterns, one per line, in the working tree root.
	DefaultIgnoreFile = ".ogitignore"
)

// Default identity used when .ogit/config carries no [user] section.
const (
	DefaultUserName  = "ogit"
	DefaultUserEmail = "ogit@localhost"
)

// Config sections and keys.
const (
	UserSection      = "user"
	UserNameKey      = "name"
	UserEmailKey     = "email"
	CoreSection      = "core"
	CoreIgnoreKey    = "ignorefile"
	TempObjectPrefix = "tmp_obj_"
	TempHeadPrefix   = "tmp_head_"
	TempConfigPrefix = "tmp_config_"
)

// File system permissions for created files and directories.
const (
	// DirPerms grants read/write/execute to owner, read/execute to others (rwxr-xr-x).
	DirPerms os.FileMode = 0755

	// FilePerms grants read/write to owner, read-only to others (rw-r--r--).
	FilePerms os.FileMode = 0644
)

// Cryptographic hash properties.
const (
	// HashByteLength is byte length of SHA-1 hash (20 bytes).
	HashByteLength = 20

	// HashStringLength is hex string length of SHA-1 hash (40 characters).
	HashStringLength = 40

	// HashDirPrefixLength is subdirectory prefix length under objects/ (2 characters).
	HashDirPrefixLength = 2
)

// Object type prefixes used in commit metadata.
const (
	// CommitTreePrefix marks the root tree line in commit objects.
	CommitTreePrefix = "tree "

	// CommitParentPrefix marks parent commit lines in commit objects.
	CommitParentPrefix = "parent "

	// CommitAuthorPrefix marks author metadata in commit objects.
	CommitAuthorPrefix = "author "

	// CommitCommitterPrefix marks committer metadata in commit objects.
	CommitCommitterPrefix = "committer "
)

// Object format constants.
const (
	// NullByte separates header from content in objects.
	NullByte = '\x00'
)

// Time conversion constants for timezone formatting.
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)
