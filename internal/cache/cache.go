// Package cache provides a BoltDB-backed memoization cache for solved
// package-selection problems: the same set of packages, constraints, and
// weights hashes to the same key, so re-solving an unchanged problem is a
// cache hit instead of a full restart branch-and-bound search.
package cache

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

var bucketResults = []byte("results")

// Result is the cached readout for a solved problem: one version and
// disabled flag per package, in package-id order.
type Result struct {
	Versions []int
	Disabled []bool
}

// Cache manages a bolt.DB file holding memoized solve results.
type Cache struct {
	db *bolt.DB
}

// Open opens (creating if necessary) a Cache backed by a BoltDB file at
// path. The parent directory is created if missing.
func Open(path string) (*Cache, error) {
	dir := filepath.Dir(path)
	if fi, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "failed to create cache directory: %s", dir)
		}
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to stat cache directory: %s", dir)
	} else if !fi.IsDir() {
		return nil, errors.Errorf("cache path is not a directory: %s", dir)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open BoltDB cache file %q", path)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketResults)
		return err
	}); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize cache bucket")
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying BoltDB file.
func (c *Cache) Close() error {
	return errors.Wrap(c.db.Close(), "error closing cache database")
}

// Get returns the memoized result for key, if any.
func (c *Cache) Get(key [32]byte) (Result, bool, error) {
	var res Result
	var ok bool
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketResults)
		v := b.Get(key[:])
		if v == nil {
			return nil
		}
		decoded, err := decodeResult(v)
		if err != nil {
			return err
		}
		res = decoded
		ok = true
		return nil
	})
	if err != nil {
		return Result{}, false, errors.Wrap(err, "failed to read cache entry")
	}
	return res, ok, nil
}

// Put memoizes res under key, overwriting any existing entry.
func (c *Cache) Put(key [32]byte, res Result) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketResults)
		return b.Put(key[:], encodeResult(res))
	})
	return errors.Wrap(err, "failed to write cache entry")
}

// encodeResult packs a Result into a flat byte slice: a count, then one
// int64 version and one byte disabled-flag per package.
func encodeResult(res Result) []byte {
	n := len(res.Versions)
	buf := make([]byte, 8+n*9)
	binary.BigEndian.PutUint64(buf[0:8], uint64(n))
	for i := 0; i < n; i++ {
		off := 8 + i*9
		binary.BigEndian.PutUint64(buf[off:off+8], uint64(res.Versions[i]))
		if res.Disabled[i] {
			buf[off+8] = 1
		}
	}
	return buf
}

func decodeResult(buf []byte) (Result, error) {
	if len(buf) < 8 {
		return Result{}, errors.New("cache: truncated entry")
	}
	n := int(binary.BigEndian.Uint64(buf[0:8]))
	if len(buf) != 8+n*9 {
		return Result{}, errors.New("cache: malformed entry length")
	}
	res := Result{
		Versions: make([]int, n),
		Disabled: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		off := 8 + i*9
		res.Versions[i] = int(int64(binary.BigEndian.Uint64(buf[off : off+8])))
		res.Disabled[i] = buf[off+8] == 1
	}
	return res, nil
}
